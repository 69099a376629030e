package lecture

import (
	"context"
	"time"
)

// lecture types
const (
	TypeVideo      = "video"
	TypeAssignment = "assignment"
	TypeQuiz       = "quiz"
)

// Lecture leaf unit of a course
type Lecture struct {
	ID          string    `json:"id"`
	ModuleID    string    `json:"module_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	Duration    string    `json:"duration"`
	Order       int       `json:"order"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LecturePatch partial update, nil fields are left untouched
type LecturePatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	VideoURL    *string `json:"video_url"`
	Duration    *string `json:"duration"`
	Order       *int    `json:"order"`
	Type        *string `json:"type"`
}

type LectureRepository interface {
	// ListLectures lectures of module by order
	ListLectures(ctx context.Context, moduleID string) ([]*Lecture, error)
	FindLecture(ctx context.Context, id string) (*Lecture, error)
	MaxOrder(ctx context.Context, moduleID string) (int, error)
	SaveLecture(ctx context.Context, lecture *Lecture) error
	UpdateLecture(ctx context.Context, id string, patch *LecturePatch) (bool, error)
	DeleteLecture(ctx context.Context, id string) (bool, error)
	Reorder(ctx context.Context, moduleID string, ids []string) error
	// FirstLectureID first lecture by module order then lecture order in one query, "" when none
	FirstLectureID(ctx context.Context, courseID string) (string, error)
	FirstModuleID(ctx context.Context, courseID string) (string, error)
	FirstLectureOfModule(ctx context.Context, moduleID string) (string, error)
}

type LectureUseCase interface {
	ListLectures(ctx context.Context, moduleID string) ([]*Lecture, error)
	GetLecture(ctx context.Context, id string) (*Lecture, error)
	CreateLecture(ctx context.Context, lecture *Lecture) (*Lecture, error)
	UpdateLecture(ctx context.Context, id string, patch *LecturePatch) (*Lecture, error)
	DeleteLecture(ctx context.Context, id string) error
	ReorderLectures(ctx context.Context, moduleID string, ids []string) error
	FirstLecture(ctx context.Context, courseID string) (string, error)
}
