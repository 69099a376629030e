package course

import (
	"context"
	"database/sql"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
)

type CourseSQL struct {
	Conn          driver.ITransactionalDB
	UUIDGenerator uuid.Generator
}

var _ CourseRepository = &CourseSQL{}

func NewCourseRepository(Conn driver.ITransactionalDB, UUIDGenerator uuid.Generator) *CourseSQL {
	return &CourseSQL{Conn, UUIDGenerator}
}

const courseColumns = `"id", "title", COALESCE("description", ''), COALESCE("long_description", ''),
	COALESCE("category", ''), COALESCE("level", ''), COALESCE("duration", ''), "price",
	COALESCE("image_url", ''), COALESCE("instructor_id", ''), "published",
	COALESCE("for_text", ''), COALESCE("not_for", ''), "created_at", "updated_at"`

func scanCourse(rows driver.ISQLRows) (*Course, error) {
	var (
		item  = new(Course)
		price float64
	)
	err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.LongDescription,
		&item.Category, &item.Level, &item.Duration, &price,
		&item.ImageURL, &item.InstructorID, &item.Published,
		&item.ForText, &item.NotFor, &item.CreatedAt, &item.UpdatedAt)
	item.Price = Price(price)
	return item, err
}

func (repo *CourseSQL) ListCourses(ctx context.Context, filter *CourseFilter) ([]*Course, error) {
	query := `SELECT ` + courseColumns + ` FROM "courses" WHERE 1 = 1`
	var args []interface{}
	if filter != nil {
		if filter.Published != nil {
			args = append(args, *filter.Published)
			query += ` AND "published" = $1`
		}
		if filter.Category != "" && filter.Category != "all" {
			args = append(args, filter.Category)
			query += ` AND "category" = ` + driver.InPlaceholders(len(args), 1)
		}
	}
	query += ` ORDER BY "created_at" DESC`

	rows, err := repo.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError("ListCourses", err)
	}
	defer rows.Close()

	result := []*Course{}
	for rows.Next() {
		item, err := scanCourse(rows)
		if err != nil {
			return nil, domain.NewStoreError("ListCourses", err)
		}
		result = append(result, item)
	}
	return result, domain.NewStoreError("ListCourses", rows.Err())
}

func (repo *CourseSQL) FindCourse(ctx context.Context, id string) (*Course, error) {
	rows, err := repo.Conn.QueryContext(ctx, `SELECT `+courseColumns+` FROM "courses" WHERE "id" = $1`, id)
	if err != nil {
		return nil, domain.NewStoreError("FindCourse", err)
	}
	defer rows.Close()

	if rows.Next() {
		item, err := scanCourse(rows)
		if err != nil {
			return nil, domain.NewStoreError("FindCourse", err)
		}
		return item, nil
	}
	return nil, domain.NewStoreError("FindCourse", rows.Err())
}

func (repo *CourseSQL) SaveCourse(ctx context.Context, course *Course) error {
	id, err := repo.UUIDGenerator.Generate()
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	course.ID = id
	course.CreatedAt = now
	course.UpdatedAt = now

	_, err = repo.Conn.ExecContext(ctx, `INSERT INTO "courses"(
	"id", "title", "description", "long_description", "category", "level", "duration", "price",
	"image_url", "instructor_id", "published", "for_text", "not_for", "created_at", "updated_at")
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		course.ID, course.Title, course.Description, course.LongDescription, course.Category, course.Level,
		course.Duration, float64(course.Price), course.ImageURL, course.InstructorID, course.Published,
		course.ForText, course.NotFor, course.CreatedAt, course.UpdatedAt)
	return domain.NewStoreError("SaveCourse", err)
}

func (repo *CourseSQL) UpdateCourse(ctx context.Context, id string, patch *CoursePatch) (bool, error) {
	set := new(SetCourse)
	set.apply(patch)
	set.Add("updated_at", time.Now().UTC())

	res, err := repo.Conn.ExecContext(ctx, `UPDATE "courses" SET `+set.String()+` WHERE "id" = `+set.Next(), set.Args(id)...)
	if err != nil {
		return false, domain.NewStoreError("UpdateCourse", err)
	}
	n, err := res.RowsAffected()
	return n > 0, domain.NewStoreError("UpdateCourse", err)
}

// SetCourse maps a patch onto course columns
type SetCourse struct {
	driver.SetClause
}

func (sc *SetCourse) apply(patch *CoursePatch) {
	if patch == nil {
		return
	}
	columns := []struct {
		column string
		value  *string
	}{
		{"title", patch.Title},
		{"description", patch.Description},
		{"long_description", patch.LongDescription},
		{"category", patch.Category},
		{"level", patch.Level},
		{"duration", patch.Duration},
		{"image_url", patch.ImageURL},
		{"instructor_id", patch.InstructorID},
		{"for_text", patch.ForText},
		{"not_for", patch.NotFor},
	}
	for _, s := range columns {
		if s.value != nil {
			sc.Add(s.column, *s.value)
		}
	}
	if patch.Price != nil {
		sc.Add("price", float64(*patch.Price))
	}
	if patch.Published != nil {
		sc.Add("published", *patch.Published)
	}
}

func (repo *CourseSQL) DeleteCourse(ctx context.Context, id string) (bool, error) {
	res, err := repo.Conn.ExecContext(ctx, `DELETE FROM "courses" WHERE "id" = $1`, id)
	if err != nil {
		return false, domain.NewStoreError("DeleteCourse", err)
	}
	n, err := res.RowsAffected()
	return n > 0, domain.NewStoreError("DeleteCourse", err)
}

func (repo *CourseSQL) ListOutline(ctx context.Context, courseID string) ([]*ModuleOutline, error) {
	rows, err := repo.Conn.QueryContext(ctx, `
SELECT
    m."id", m."course_id", m."title", COALESCE(m."description", ''), m."order",
    l."id", COALESCE(l."title", ''), COALESCE(l."duration", ''), COALESCE(l."type", '')
FROM
    "modules" m
        LEFT JOIN
    "lectures" l ON (l."module_id" = m."id")
WHERE
    m."course_id" = $1
ORDER BY m."order" ASC, m."id" ASC, l."order" ASC`, courseID)
	if err != nil {
		return nil, domain.NewStoreError("ListOutline", err)
	}
	defer rows.Close()

	result := []*ModuleOutline{}
	var current *ModuleOutline
	for rows.Next() {
		var (
			m         ModuleOutline
			l         LectureSummary
			lectureID sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.Order,
			&lectureID, &l.Title, &l.Duration, &l.Type); err != nil {
			return nil, domain.NewStoreError("ListOutline", err)
		}
		if current == nil || current.ID != m.ID {
			m.Lessons = []*LectureSummary{}
			current = &m
			result = append(result, current)
		}
		if lectureID.Valid {
			l.ID = lectureID.String
			current.Lessons = append(current.Lessons, &l)
		}
	}
	return result, domain.NewStoreError("ListOutline", rows.Err())
}
