package lecture

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
)

type LectureSQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ LectureRepository = &LectureSQL{}

func NewLectureRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *LectureSQL {
	return &LectureSQL{Conn, UUIDGenerator}
}

const lectureColumns = `"id", "module_id", "title", COALESCE("description", ''), COALESCE("video_url", ''),
	COALESCE("duration", ''), "order", "type", "created_at", "updated_at"`

func (repo *LectureSQL) queryLectures(ctx context.Context, op, query string, args ...interface{}) ([]*Lecture, error) {
	rows, err := repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	defer rows.Close()

	result := []*Lecture{}
	for rows.Next() {
		item := new(Lecture)
		if err := rows.Scan(&item.ID, &item.ModuleID, &item.Title, &item.Description, &item.VideoURL,
			&item.Duration, &item.Order, &item.Type, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, domain.NewStoreError(op, err)
		}
		result = append(result, item)
	}
	return result, domain.NewStoreError(op, rows.Err())
}

func (repo *LectureSQL) queryID(ctx context.Context, op, query string, args ...interface{}) (string, error) {
	rows, err := repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return "", domain.NewStoreError(op, err)
	}
	ids, err := driver.ScanStrings(rows)
	if err != nil || len(ids) == 0 {
		return "", domain.NewStoreError(op, err)
	}
	return ids[0], nil
}

func (repo *LectureSQL) ListLectures(ctx context.Context, moduleID string) ([]*Lecture, error) {
	return repo.queryLectures(ctx, "ListLectures", `SELECT `+lectureColumns+` FROM "lectures"
	WHERE "module_id" = $1 ORDER BY "order" ASC`, moduleID)
}

func (repo *LectureSQL) FindLecture(ctx context.Context, id string) (*Lecture, error) {
	lectures, err := repo.queryLectures(ctx, "FindLecture", `SELECT `+lectureColumns+` FROM "lectures" WHERE "id" = $1`, id)
	if err != nil || len(lectures) == 0 {
		return nil, err
	}
	return lectures[0], nil
}

func (repo *LectureSQL) MaxOrder(ctx context.Context, moduleID string) (int, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT MAX("order") FROM "lectures" WHERE "module_id" = $1`, moduleID)
	if err != nil {
		return 0, domain.NewStoreError("MaxOrder", err)
	}
	defer rows.Close()

	var max sql.NullInt64
	if rows.Next() {
		if err := rows.Scan(&max); err != nil {
			return 0, domain.NewStoreError("MaxOrder", err)
		}
	}
	return int(max.Int64), domain.NewStoreError("MaxOrder", rows.Err())
}

func (repo *LectureSQL) SaveLecture(ctx context.Context, lecture *Lecture) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	lecture.ID = id
	lecture.CreatedAt = now
	lecture.UpdatedAt = now

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO "lectures"(
	"id", "module_id", "title", "description", "video_url", "duration", "order", "type", "created_at", "updated_at")
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		lecture.ID, lecture.ModuleID, lecture.Title, lecture.Description, lecture.VideoURL,
		lecture.Duration, lecture.Order, lecture.Type, lecture.CreatedAt, lecture.UpdatedAt)
	return domain.NewStoreError("SaveLecture", err)
}

func (repo *LectureSQL) UpdateLecture(ctx context.Context, id string, patch *LecturePatch) (bool, error) {
	set := new(driver.SetClause)
	if patch != nil {
		for _, s := range []struct {
			column string
			value  *string
		}{
			{"title", patch.Title},
			{"description", patch.Description},
			{"video_url", patch.VideoURL},
			{"duration", patch.Duration},
			{"type", patch.Type},
		} {
			if s.value != nil {
				set.Add(s.column, *s.value)
			}
		}
		if patch.Order != nil {
			set.Add("order", *patch.Order)
		}
	}
	set.Add("updated_at", time.Now().UTC())

	res, err := repo.Conn.ExecContext(ctx, `UPDATE "lectures" SET `+set.String()+` WHERE "id" = `+set.Next(), set.Args(id)...)
	if err != nil {
		return false, domain.NewStoreError("UpdateLecture", err)
	}
	n, err := res.RowsAffected()
	return n > 0, domain.NewStoreError("UpdateLecture", err)
}

func (repo *LectureSQL) DeleteLecture(ctx context.Context, id string) (bool, error) {
	res, err := repo.Conn.ExecContext(ctx, `DELETE FROM "lectures" WHERE "id" = $1`, id)
	if err != nil {
		return false, domain.NewStoreError("DeleteLecture", err)
	}
	n, err := res.RowsAffected()
	return n > 0, domain.NewStoreError("DeleteLecture", err)
}

func (repo *LectureSQL) Reorder(ctx context.Context, moduleID string, ids []string) (err error) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return domain.NewArgumentError("lecture_ids", fmt.Sprintf("lecture %s is listed more than once", id))
		}
		seen[id] = true
	}

	tx, err := repo.Conn.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewStoreError("Reorder", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	// every lecture gets a new key, otherwise the left-out ones collide with 1..n
	rows, err := tx.QueryContext(ctx, `SELECT COUNT(*) FROM "lectures" WHERE "module_id" = $1`, moduleID)
	if err != nil {
		return domain.NewStoreError("Reorder", err)
	}
	total, err := driver.ScanCount(rows)
	if err != nil {
		return domain.NewStoreError("Reorder", err)
	}
	if total != len(ids) {
		return domain.NewArgumentError("lecture_ids", fmt.Sprintf("module %s has %d lectures, got %d", moduleID, total, len(ids)))
	}

	now := time.Now().UTC()
	for i, id := range ids {
		res, err := tx.ExecContext(ctx, `UPDATE "lectures" SET "order" = $1, "updated_at" = $2
		WHERE "id" = $3 AND "module_id" = $4`, i+1, now, id, moduleID)
		if err != nil {
			return domain.NewStoreError("Reorder", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return domain.NewStoreError("Reorder", err)
		} else if n == 0 {
			return domain.NewArgumentError("lecture_ids", fmt.Sprintf("lecture %s does not belong to module %s", id, moduleID))
		}
	}
	return domain.NewStoreError("Reorder", tx.Commit(ctx))
}

func (repo *LectureSQL) FirstLectureID(ctx context.Context, courseID string) (string, error) {
	return repo.queryID(ctx, "FirstLectureID", `
SELECT
    l."id"
FROM
    "lectures" l
        INNER JOIN
    "modules" m ON (l."module_id" = m."id")
WHERE
    m."course_id" = $1
ORDER BY m."order" ASC, l."order" ASC
LIMIT 1`, courseID)
}

func (repo *LectureSQL) FirstModuleID(ctx context.Context, courseID string) (string, error) {
	return repo.queryID(ctx, "FirstModuleID", `SELECT "id" FROM "modules"
	WHERE "course_id" = $1 ORDER BY "order" ASC LIMIT 1`, courseID)
}

func (repo *LectureSQL) FirstLectureOfModule(ctx context.Context, moduleID string) (string, error) {
	return repo.queryID(ctx, "FirstLectureOfModule", `SELECT "id" FROM "lectures"
	WHERE "module_id" = $1 ORDER BY "order" ASC LIMIT 1`, moduleID)
}
