package course

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/driver"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
	"github.com/pot-code/course-platform/internal/profile"
	"github.com/pot-code/course-platform/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInstructors map[string]*profile.Profile

func (fi fakeInstructors) FindProfile(ctx context.Context, id string) (*profile.Profile, error) {
	return fi[id], nil
}

func newCourseUseCase(t *testing.T) (*CourseUseCaseImpl, driver.ITransactionalDB) {
	conn := storetest.NewDB(t)
	instructors := fakeInstructors{"t1": {ID: "t1", Name: "Kim", AvatarURL: "/kim.png"}}
	return NewCourseUseCase(NewCourseRepository(conn, uuid.NewNanoIDGenerator(12)), instructors), conn
}

func TestCourseUseCase_CreateAndList(t *testing.T) {
	ctx := context.Background()
	cu, _ := newCourseUseCase(t)

	_, err := cu.CreateCourse(ctx, &Course{Title: "Go", Description: "basics"})
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	draft, err := cu.CreateCourse(ctx, &Course{Title: "Draft", Description: "d", InstructorID: "t1", Category: "math"})
	require.NoError(t, err)
	assert.NotEmpty(t, draft.ID)
	time.Sleep(2 * time.Millisecond)
	live, err := cu.CreateCourse(ctx, &Course{Title: "Live", Description: "l", InstructorID: "t1", Category: "math", Published: true, Price: 39000})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = cu.CreateCourse(ctx, &Course{Title: "Other", Description: "o", InstructorID: "t1", Category: "korean", Published: true})
	require.NoError(t, err)

	published, err := cu.ListPublished(ctx, "")
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "Other", published[0].Title, "newest first")

	math, err := cu.ListPublished(ctx, "math")
	require.NoError(t, err)
	require.Len(t, math, 1)
	assert.Equal(t, live.ID, math[0].ID)
	assert.Equal(t, Price(39000), math[0].Price)

	all, err := cu.ListCourses(ctx, &CourseFilter{Category: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	unpublished := false
	drafts, err := cu.ListCourses(ctx, &CourseFilter{Published: &unpublished, Category: "math"})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)
}

func TestCourseUseCase_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	cu, _ := newCourseUseCase(t)

	c, err := cu.CreateCourse(ctx, &Course{Title: "Go", Description: "basics", InstructorID: "t1", Price: 10})
	require.NoError(t, err)

	title := "Go in depth"
	price := Price(20)
	published := true
	updated, err := cu.UpdateCourse(ctx, c.ID, &CoursePatch{Title: &title, Price: &price, Published: &published})
	require.NoError(t, err)
	assert.Equal(t, "Go in depth", updated.Title)
	assert.Equal(t, "basics", updated.Description)
	assert.Equal(t, Price(20), updated.Price)
	assert.True(t, updated.Published)

	_, err = cu.UpdateCourse(ctx, "missing", &CoursePatch{Title: &title})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, cu.DeleteCourse(ctx, c.ID))
	assert.True(t, errors.Is(cu.DeleteCourse(ctx, c.ID), domain.ErrNotFound))
	_, err = cu.GetCourse(ctx, c.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCourseUseCase_Detail(t *testing.T) {
	ctx := context.Background()
	cu, conn := newCourseUseCase(t)

	c, err := cu.CreateCourse(ctx, &Course{Title: "Go", Description: "basics", InstructorID: "t1"})
	require.NoError(t, err)
	orphan, err := cu.CreateCourse(ctx, &Course{Title: "Orphan", Description: "x", InstructorID: "ghost"})
	require.NoError(t, err)

	now := time.Now().UTC()
	for _, m := range []struct {
		id    string
		order int
	}{{"m-late", 5}, {"m-early", 1}, {"m-empty", 9}} {
		storetest.Exec(t, conn, `INSERT INTO "modules"("id", "course_id", "title", "order", "created_at", "updated_at")
		VALUES($1, $2, $3, $4, $5, $6)`, m.id, c.ID, m.id, m.order, now, now)
	}
	for _, l := range []struct {
		id, module string
		order      int
	}{{"l2", "m-early", 2}, {"l1", "m-early", 1}, {"l3", "m-late", 1}} {
		storetest.Exec(t, conn, `INSERT INTO "lectures"("id", "module_id", "title", "order", "type", "created_at", "updated_at")
		VALUES($1, $2, $3, $4, 'video', $5, $6)`, l.id, l.module, l.id, l.order, now, now)
	}

	detail, err := cu.GetCourseDetail(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, detail.Modules, 3)
	assert.Equal(t, "m-early", detail.Modules[0].ID)
	require.Len(t, detail.Modules[0].Lessons, 2)
	assert.Equal(t, "l1", detail.Modules[0].Lessons[0].ID)
	assert.Equal(t, "l2", detail.Modules[0].Lessons[1].ID)
	assert.Equal(t, "m-late", detail.Modules[1].ID)
	assert.Len(t, detail.Modules[1].Lessons, 1)
	assert.NotNil(t, detail.Modules[2].Lessons)
	assert.Empty(t, detail.Modules[2].Lessons)
	assert.Equal(t, "Kim", detail.Instructor.Name)
	assert.Equal(t, "/kim.png", detail.Instructor.Avatar)
	assert.Equal(t, DefaultInstructorTitle, detail.Instructor.Title)

	detail, err = cu.GetCourseDetail(ctx, orphan.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Modules)
	assert.Equal(t, DefaultInstructorName, detail.Instructor.Name)
	assert.Equal(t, DefaultInstructorAvatar, detail.Instructor.Avatar)
}
