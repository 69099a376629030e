package enrollment

import (
	"context"

	"github.com/pot-code/course-platform/internal/domain"
	"go.elastic.co/apm"
)

// EnrollmentUseCaseImpl ...
type EnrollmentUseCaseImpl struct {
	*Lister
	EnrollmentRepository EnrollmentRepository
}

var _ EnrollmentUseCase = &EnrollmentUseCaseImpl{}

// NewEnrollmentUseCase ...
func NewEnrollmentUseCase(
	EnrollmentRepository EnrollmentRepository,
	Aggregator ProgressAggregator,
	Fanout int,
) *EnrollmentUseCaseImpl {
	return &EnrollmentUseCaseImpl{
		Lister:               NewLister(EnrollmentRepository, Aggregator, Fanout),
		EnrollmentRepository: EnrollmentRepository,
	}
}

// IsEnrolled check whether the enrollment exists
func (eu *EnrollmentUseCaseImpl) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "EnrollmentUseCaseImpl.IsEnrolled", "service")
	defer apmSpan.End()

	if err := domain.Required("userId", userID, "courseId", courseID); err != nil {
		return false, err
	}
	return eu.EnrollmentRepository.Exists(ctx, userID, courseID)
}

// Enroll create the enrollment if absent
func (eu *EnrollmentUseCaseImpl) Enroll(ctx context.Context, userID, courseID string) (bool, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "EnrollmentUseCaseImpl.Enroll", "service")
	defer apmSpan.End()

	if err := domain.Required("userId", userID, "courseId", courseID); err != nil {
		return false, err
	}

	er := eu.EnrollmentRepository
	if ok, err := er.Exists(ctx, userID, courseID); err != nil {
		return false, err
	} else if ok {
		return false, nil
	}

	if err := er.SaveEnrollment(ctx, &Enrollment{UserID: userID, CourseID: courseID}); err != nil {
		// unique (user, course) already taken by a concurrent confirmation
		if ok, _ := er.Exists(ctx, userID, courseID); ok {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
