package attachment

import (
	"context"
	"time"
)

// Attachment downloadable course material
type Attachment struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AttachmentRepository interface {
	ListAttachments(ctx context.Context, courseID string) ([]*Attachment, error)
	FindAttachment(ctx context.Context, id string) (*Attachment, error)
	SaveAttachment(ctx context.Context, attachment *Attachment) error
	DeleteAttachment(ctx context.Context, id string) (bool, error)
}

type AttachmentUseCase interface {
	ListAttachments(ctx context.Context, courseID string) ([]*Attachment, error)
	GetAttachment(ctx context.Context, id string) (*Attachment, error)
	CreateAttachment(ctx context.Context, attachment *Attachment) (*Attachment, error)
	DeleteAttachment(ctx context.Context, id string) error
}
