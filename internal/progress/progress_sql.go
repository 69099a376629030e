package progress

import (
	"context"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
)

type ProgressSQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ ProgressRepository = &ProgressSQL{}

func NewProgressRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *ProgressSQL {
	return &ProgressSQL{Conn, UUIDGenerator}
}

func (repo *ProgressSQL) ListModuleIDs(ctx context.Context, courseID string) ([]string, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT "id" FROM "modules" WHERE "course_id" = $1`, courseID)
	if err != nil {
		return nil, domain.NewStoreError("ListModuleIDs", err)
	}
	ids, err := driver.ScanStrings(rows)
	return ids, domain.NewStoreError("ListModuleIDs", err)
}

func (repo *ProgressSQL) ListLectureIDs(ctx context.Context, moduleIDs []string) ([]string, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	rows, err := repo.Conn.QueryContext(ctx, `SELECT "id" FROM "lectures"
	WHERE "module_id" IN (`+driver.InPlaceholders(1, len(moduleIDs))+`)`,
		driver.StringArgs(moduleIDs)...)
	if err != nil {
		return nil, domain.NewStoreError("ListLectureIDs", err)
	}
	ids, err := driver.ScanStrings(rows)
	return ids, domain.NewStoreError("ListLectureIDs", err)
}

// CountCompletedProgress only the count leaves the store
func (repo *ProgressSQL) CountCompletedProgress(ctx context.Context, userID string, lectureIDs []string) (int, error) {
	if len(lectureIDs) == 0 {
		return 0, nil
	}
	args := append([]interface{}{userID}, driver.StringArgs(lectureIDs)...)
	rows, err := repo.Conn.QueryContext(ctx, `SELECT COUNT(*) FROM "lecture_progress"
	WHERE "user_id" = $1
		AND "completed" = TRUE
		AND "lecture_id" IN (`+driver.InPlaceholders(2, len(lectureIDs))+`)`, args...)
	if err != nil {
		return 0, domain.NewStoreError("CountCompletedProgress", err)
	}
	count, err := driver.ScanCount(rows)
	return count, domain.NewStoreError("CountCompletedProgress", err)
}

func (repo *ProgressSQL) ListRecords(ctx context.Context, userID string, lectureIDs []string) ([]*Record, error) {
	query := `SELECT "id", "user_id", "lecture_id", "completed", "last_accessed"
	FROM "lecture_progress" WHERE "user_id" = $1`
	args := []interface{}{userID}
	if lectureIDs != nil {
		if len(lectureIDs) == 0 {
			return []*Record{}, nil
		}
		query += ` AND "lecture_id" IN (` + driver.InPlaceholders(2, len(lectureIDs)) + `)`
		args = append(args, driver.StringArgs(lectureIDs)...)
	}

	rows, err := repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError("ListRecords", err)
	}
	defer rows.Close()

	result := []*Record{}
	for rows.Next() {
		item := new(Record)
		if err := rows.Scan(&item.ID, &item.UserID, &item.LectureID, &item.Completed, &item.LastAccessed); err != nil {
			return nil, domain.NewStoreError("ListRecords", err)
		}
		result = append(result, item)
	}
	return result, domain.NewStoreError("ListRecords", rows.Err())
}

// FindRecord returns nil when the pair has no record yet
func (repo *ProgressSQL) FindRecord(ctx context.Context, userID, lectureID string) (*Record, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT "id", "user_id", "lecture_id", "completed", "last_accessed"
	FROM "lecture_progress" WHERE "user_id" = $1 AND "lecture_id" = $2`, userID, lectureID)
	if err != nil {
		return nil, domain.NewStoreError("FindRecord", err)
	}
	defer rows.Close()

	if rows.Next() {
		item := new(Record)
		if err := rows.Scan(&item.ID, &item.UserID, &item.LectureID, &item.Completed, &item.LastAccessed); err != nil {
			return nil, domain.NewStoreError("FindRecord", err)
		}
		return item, nil
	}
	return nil, domain.NewStoreError("FindRecord", rows.Err())
}

func (repo *ProgressSQL) InsertRecord(ctx context.Context, record *Record) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	record.ID = id

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO "lecture_progress"("id", "user_id", "lecture_id", "completed", "last_accessed")
	VALUES($1, $2, $3, $4, $5)`, record.ID, record.UserID, record.LectureID, record.Completed, record.LastAccessed)
	return domain.NewStoreError("InsertRecord", err)
}

func (repo *ProgressSQL) UpdateRecord(ctx context.Context, record *Record) error {
	_, err := repo.Conn.ExecContext(ctx, `UPDATE "lecture_progress"
	SET "completed" = $1,
		"last_accessed" = $2
	WHERE "id" = $3`, record.Completed, record.LastAccessed, record.ID)
	return domain.NewStoreError("UpdateRecord", err)
}
