package progress

import (
	"context"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"go.elastic.co/apm"
)

// ProgressUseCaseImpl ...
type ProgressUseCaseImpl struct {
	*Aggregator
	ProgressRepository ProgressRepository
}

var _ ProgressUseCase = &ProgressUseCaseImpl{}

// NewProgressUseCase ...
func NewProgressUseCase(
	ProgressRepository ProgressRepository,
) *ProgressUseCaseImpl {
	return &ProgressUseCaseImpl{
		Aggregator:         NewAggregator(ProgressRepository),
		ProgressRepository: ProgressRepository,
	}
}

// ListProgress list progress records of user, narrowed to the lectures of courseID if given
func (pu *ProgressUseCaseImpl) ListProgress(ctx context.Context, userID, courseID string) ([]*Record, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.ListProgress", "service")
	defer apmSpan.End()

	if err := domain.Required("userId", userID); err != nil {
		return nil, err
	}

	pr := pu.ProgressRepository
	if courseID == "" {
		return pr.ListRecords(ctx, userID, nil)
	}

	moduleIDs, err := pr.ListModuleIDs(ctx, courseID)
	if err != nil {
		return nil, err
	}
	lectureIDs, err := pr.ListLectureIDs(ctx, moduleIDs)
	if err != nil {
		return nil, err
	}
	if lectureIDs == nil {
		lectureIDs = []string{}
	}
	return pr.ListRecords(ctx, userID, lectureIDs)
}

// SaveProgress upsert the record of (user, lecture), last_accessed is refreshed on every call
func (pu *ProgressUseCaseImpl) SaveProgress(ctx context.Context, userID, lectureID string, completed bool) (*Record, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "ProgressUseCaseImpl.SaveProgress", "service")
	defer apmSpan.End()

	if err := domain.Required("lectureId", lectureID, "userId", userID); err != nil {
		return nil, err
	}

	pr := pu.ProgressRepository
	now := time.Now().UTC()
	existing, err := pr.FindRecord(ctx, userID, lectureID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Completed = completed
		existing.LastAccessed = now
		if err := pr.UpdateRecord(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	record := &Record{
		UserID:       userID,
		LectureID:    lectureID,
		Completed:    completed,
		LastAccessed: now,
	}
	if err := pr.InsertRecord(ctx, record); err != nil {
		// a concurrent first interaction won the unique (user, lecture) slot
		if again, ferr := pr.FindRecord(ctx, userID, lectureID); ferr == nil && again != nil {
			again.Completed = completed
			again.LastAccessed = now
			if err := pr.UpdateRecord(ctx, again); err != nil {
				return nil, err
			}
			return again, nil
		}
		return nil, err
	}
	return record, nil
}
