package enrollment

import (
	"context"
	"fmt"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultFanout concurrent aggregations per listing when none is configured
const DefaultFanout = 8

// Lister lists the enrolled courses of a user annotated with progress
type Lister struct {
	EnrollmentRepository EnrollmentRepository
	Aggregator           ProgressAggregator
	Fanout               int
}

// NewLister ...
func NewLister(EnrollmentRepository EnrollmentRepository, Aggregator ProgressAggregator, Fanout int) *Lister {
	if Fanout < 1 {
		Fanout = DefaultFanout
	}
	return &Lister{EnrollmentRepository, Aggregator, Fanout}
}

// ListEnrolledCourses keeps the enrollment order, drops enrollments whose course is gone.
// Progress of each course is computed concurrently and joined before returning.
func (ls *Lister) ListEnrolledCourses(ctx context.Context, userID string) ([]*EnrolledCourse, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "Lister.ListEnrolledCourses", "service")
	defer apmSpan.End()

	if err := domain.Required("userId", userID); err != nil {
		return nil, err
	}

	enrollments, err := ls.EnrollmentRepository.ListEnrollments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments of user %s: %w", userID, err)
	}

	result := make([]*EnrolledCourse, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Course == nil {
			continue
		}
		result = append(result, &EnrolledCourse{CourseSummary: *e.Course})
	}

	logger := logging.ExtractLoggerFromContext(ctx)
	var g errgroup.Group
	g.SetLimit(ls.Fanout)
	for _, item := range result {
		item := item
		g.Go(func() error {
			progress, err := ls.Aggregator.CourseProgress(ctx, item.ID, userID)
			if err != nil {
				// one course never fails the listing
				logger.Warn("Failed to compute course progress",
					zap.String("course.id", item.ID),
					zap.String("user.id", userID),
					zap.Error(err),
				)
				progress = 0
			}
			item.Progress = progress
			return nil
		})
	}
	// workers absorb their own failures, Wait only joins
	_ = g.Wait()

	logger.Debug("Listed enrolled courses", zap.String("user.id", userID), zap.Int("count", len(result)))
	return result, nil
}
