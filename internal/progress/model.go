package progress

import (
	"context"
	"time"
)

// Record completion state of one lecture for one user, at most one per (user, lecture)
type Record struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	LectureID    string    `json:"lecture_id"`
	Completed    bool      `json:"completed"`
	LastAccessed time.Time `json:"last_accessed"`
}

// Store read contract used by the aggregation
type Store interface {
	ListModuleIDs(ctx context.Context, courseID string) ([]string, error)
	// ListLectureIDs returns lectures owned by any of moduleIDs
	ListLectureIDs(ctx context.Context, moduleIDs []string) ([]string, error)
	// CountCompletedProgress count completed records of user within lectureIDs, empty set is 0
	CountCompletedProgress(ctx context.Context, userID string, lectureIDs []string) (int, error)
}

type ProgressRepository interface {
	Store
	// ListRecords records of user, a nil lectureIDs means every lecture
	ListRecords(ctx context.Context, userID string, lectureIDs []string) ([]*Record, error)
	FindRecord(ctx context.Context, userID, lectureID string) (*Record, error)
	InsertRecord(ctx context.Context, record *Record) error
	UpdateRecord(ctx context.Context, record *Record) error
}

type ProgressUseCase interface {
	CourseProgress(ctx context.Context, courseID, userID string) (int, error)
	ListProgress(ctx context.Context, userID, courseID string) ([]*Record, error)
	SaveProgress(ctx context.Context, userID, lectureID string, completed bool) (*Record, error)
}
