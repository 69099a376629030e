package progress

import (
	"context"
	"fmt"
	"math"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/logging"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// Aggregator computes the percent-complete of a course for a user.
//
// Store failures degrade to 0 so a single broken course never fails a listing,
// they are logged and sent to apm instead.
type Aggregator struct {
	Store Store
}

// NewAggregator ...
func NewAggregator(Store Store) *Aggregator {
	return &Aggregator{Store}
}

// CourseProgress returns round(100 * completed / total) in [0, 100]
func (ag *Aggregator) CourseProgress(ctx context.Context, courseID, userID string) (int, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "Aggregator.CourseProgress", "service")
	defer apmSpan.End()

	if err := domain.Required("courseId", courseID, "userId", userID); err != nil {
		return 0, err
	}

	completed, total, err := ag.count(ctx, courseID, userID)
	if err != nil {
		logging.ExtractLoggerFromContext(ctx).Warn("Failed to compute course progress, fallback to 0",
			zap.String("course.id", courseID),
			zap.String("user.id", userID),
			zap.Error(err),
		)
		apm.CaptureError(ctx, err).Send()
		return 0, nil
	}
	return Percent(completed, total), nil
}

func (ag *Aggregator) count(ctx context.Context, courseID, userID string) (completed, total int, err error) {
	store := ag.Store
	moduleIDs, err := store.ListModuleIDs(ctx, courseID)
	if err != nil {
		return 0, 0, fmt.Errorf("resolve modules of course %s: %w", courseID, err)
	}
	if len(moduleIDs) == 0 {
		return 0, 0, nil
	}

	lectureIDs, err := store.ListLectureIDs(ctx, moduleIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("resolve lectures of course %s: %w", courseID, err)
	}
	if len(lectureIDs) == 0 {
		return 0, 0, nil
	}

	completed, err = store.CountCompletedProgress(ctx, userID, lectureIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("count progress of course %s: %w", courseID, err)
	}
	return completed, len(lectureIDs), nil
}

// Percent rounds half away from zero, clamped to [0, 100], no lectures is 0
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
