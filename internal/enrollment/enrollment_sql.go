package enrollment

import (
	"context"
	"database/sql"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
)

type EnrollmentSQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ EnrollmentRepository = &EnrollmentSQL{}

func NewEnrollmentRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *EnrollmentSQL {
	return &EnrollmentSQL{Conn, UUIDGenerator}
}

// ListEnrollments no ORDER BY, the caller keeps whatever order the store returns
func (repo *EnrollmentSQL) ListEnrollments(ctx context.Context, userID string) ([]*Enrollment, error) {
	rows, err := repo.Conn.QueryContext(ctx, `
SELECT
    e."id", e."user_id", e."course_id",
    c."id", COALESCE(c."title", ''), COALESCE(c."description", ''),
    COALESCE(c."image_url", ''), COALESCE(c."category", ''), c."created_at"
FROM
    "enrollments" e
        LEFT JOIN
    "courses" c ON (c."id" = e."course_id")
WHERE
    e."user_id" = $1`, userID)
	if err != nil {
		return nil, domain.NewStoreError("ListEnrollments", err)
	}
	defer rows.Close()

	var result []*Enrollment
	for rows.Next() {
		var (
			item      = new(Enrollment)
			course    = new(CourseSummary)
			courseID  sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&item.ID, &item.UserID, &item.CourseID,
			&courseID, &course.Title, &course.Description, &course.ImageURL, &course.Category, &createdAt,
		); err != nil {
			return nil, domain.NewStoreError("ListEnrollments", err)
		}
		if courseID.Valid {
			course.ID = courseID.String
			course.CreatedAt = createdAt.Time
			item.Course = course
		}
		result = append(result, item)
	}
	return result, domain.NewStoreError("ListEnrollments", rows.Err())
}

func (repo *EnrollmentSQL) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT "id" FROM "enrollments"
	WHERE "user_id" = $1 AND "course_id" = $2 LIMIT 1`, userID, courseID)
	if err != nil {
		return false, domain.NewStoreError("Exists", err)
	}
	defer rows.Close()

	found := rows.Next()
	return found, domain.NewStoreError("Exists", rows.Err())
}

func (repo *EnrollmentSQL) SaveEnrollment(ctx context.Context, enrollment *Enrollment) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	enrollment.ID = id

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO "enrollments"("id", "user_id", "course_id", "created_at")
	VALUES($1, $2, $3, $4)`, enrollment.ID, enrollment.UserID, enrollment.CourseID, time.Now().UTC())
	return domain.NewStoreError("SaveEnrollment", err)
}
