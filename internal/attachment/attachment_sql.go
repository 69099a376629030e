package attachment

import (
	"context"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
)

type AttachmentSQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ AttachmentRepository = &AttachmentSQL{}

func NewAttachmentRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *AttachmentSQL {
	return &AttachmentSQL{Conn, UUIDGenerator}
}

func (repo *AttachmentSQL) query(ctx context.Context, op, where string, arg string) ([]*Attachment, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT "id", "course_id", "name", "url", "created_at", "updated_at"
	FROM "attachments" WHERE `+where+` = $1 ORDER BY "created_at" ASC`, arg)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	defer rows.Close()

	result := []*Attachment{}
	for rows.Next() {
		item := new(Attachment)
		if err := rows.Scan(&item.ID, &item.CourseID, &item.Name, &item.URL, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, domain.NewStoreError(op, err)
		}
		result = append(result, item)
	}
	return result, domain.NewStoreError(op, rows.Err())
}

func (repo *AttachmentSQL) ListAttachments(ctx context.Context, courseID string) ([]*Attachment, error) {
	return repo.query(ctx, "ListAttachments", `"course_id"`, courseID)
}

func (repo *AttachmentSQL) FindAttachment(ctx context.Context, id string) (*Attachment, error) {
	attachments, err := repo.query(ctx, "FindAttachment", `"id"`, id)
	if err != nil || len(attachments) == 0 {
		return nil, err
	}
	return attachments[0], nil
}

func (repo *AttachmentSQL) SaveAttachment(ctx context.Context, attachment *Attachment) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	attachment.ID = id
	attachment.CreatedAt = now
	attachment.UpdatedAt = now

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO "attachments"("id", "course_id", "name", "url", "created_at", "updated_at")
	VALUES($1, $2, $3, $4, $5, $6)`,
		attachment.ID, attachment.CourseID, attachment.Name, attachment.URL, attachment.CreatedAt, attachment.UpdatedAt)
	return domain.NewStoreError("SaveAttachment", err)
}

func (repo *AttachmentSQL) DeleteAttachment(ctx context.Context, id string) (bool, error) {
	res, err := repo.Conn.ExecContext(ctx, `DELETE FROM "attachments" WHERE "id" = $1`, id)
	if err != nil {
		return false, domain.NewStoreError("DeleteAttachment", err)
	}
	n, err := res.RowsAffected()
	return n > 0, domain.NewStoreError("DeleteAttachment", err)
}
