package course

import (
	"context"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"github.com/pot-code/course-platform/internal/profile"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// defaults of the instructor block when the profile is missing or incomplete
const (
	DefaultInstructorName   = "Instructor"
	DefaultInstructorTitle  = "Course expert"
	DefaultInstructorBio    = "An experienced instructor of this course."
	DefaultInstructorAvatar = "/placeholder.svg?height=100&width=100"
)

// InstructorFinder profile source of the course detail
type InstructorFinder interface {
	FindProfile(ctx context.Context, id string) (*profile.Profile, error)
}

// CourseUseCaseImpl ...
type CourseUseCaseImpl struct {
	CourseRepository CourseRepository
	InstructorFinder InstructorFinder
}

var _ CourseUseCase = &CourseUseCaseImpl{}

// NewCourseUseCase ...
func NewCourseUseCase(
	CourseRepository CourseRepository,
	InstructorFinder InstructorFinder,
) *CourseUseCaseImpl {
	return &CourseUseCaseImpl{CourseRepository, InstructorFinder}
}

// ListPublished public catalog
func (cu *CourseUseCaseImpl) ListPublished(ctx context.Context, category string) ([]*Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.ListPublished", "service")
	defer apmSpan.End()

	published := true
	return cu.CourseRepository.ListCourses(ctx, &CourseFilter{Published: &published, Category: category})
}

func (cu *CourseUseCaseImpl) ListCourses(ctx context.Context, filter *CourseFilter) ([]*Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.ListCourses", "service")
	defer apmSpan.End()

	return cu.CourseRepository.ListCourses(ctx, filter)
}

func (cu *CourseUseCaseImpl) GetCourse(ctx context.Context, id string) (*Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.GetCourse", "service")
	defer apmSpan.End()

	if err := domain.Required("courseId", id); err != nil {
		return nil, err
	}
	c, err := cu.CourseRepository.FindCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// GetCourseDetail course with its outline and instructor block
func (cu *CourseUseCaseImpl) GetCourseDetail(ctx context.Context, id string) (*CourseDetail, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.GetCourseDetail", "service")
	defer apmSpan.End()

	c, err := cu.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	outline, err := cu.CourseRepository.ListOutline(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CourseDetail{
		Course:     c,
		Modules:    outline,
		Instructor: cu.instructor(ctx, c.InstructorID),
	}, nil
}

func (cu *CourseUseCaseImpl) instructor(ctx context.Context, id string) *Instructor {
	result := &Instructor{
		Name:   DefaultInstructorName,
		Title:  DefaultInstructorTitle,
		Bio:    DefaultInstructorBio,
		Avatar: DefaultInstructorAvatar,
	}
	if id == "" {
		return result
	}

	p, err := cu.InstructorFinder.FindProfile(ctx, id)
	if err != nil {
		logging.ExtractLoggerFromContext(ctx).Warn("Failed to load instructor profile",
			zap.String("user.id", id), zap.Error(err))
		return result
	}
	if p != nil {
		if p.Name != "" {
			result.Name = p.Name
		}
		if p.AvatarURL != "" {
			result.Avatar = p.AvatarURL
		}
	}
	return result
}

// CreateCourse title, description and instructor are required
func (cu *CourseUseCaseImpl) CreateCourse(ctx context.Context, course *Course) (*Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.CreateCourse", "service")
	defer apmSpan.End()

	if err := domain.Required(
		"title", course.Title,
		"description", course.Description,
		"instructor_id", course.InstructorID,
	); err != nil {
		return nil, err
	}
	if err := cu.CourseRepository.SaveCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (cu *CourseUseCaseImpl) UpdateCourse(ctx context.Context, id string, patch *CoursePatch) (*Course, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.UpdateCourse", "service")
	defer apmSpan.End()

	if err := domain.Required("courseId", id); err != nil {
		return nil, err
	}
	ok, err := cu.CourseRepository.UpdateCourse(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cu.GetCourse(ctx, id)
}

func (cu *CourseUseCaseImpl) DeleteCourse(ctx context.Context, id string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "CourseUseCaseImpl.DeleteCourse", "service")
	defer apmSpan.End()

	if err := domain.Required("courseId", id); err != nil {
		return err
	}
	ok, err := cu.CourseRepository.DeleteCourse(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
