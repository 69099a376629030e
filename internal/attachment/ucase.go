package attachment

import (
	"context"

	"github.com/pot-code/course-platform/internal/domain"
	"go.elastic.co/apm"
)

type AttachmentUseCaseImpl struct {
	AttachmentRepository AttachmentRepository
}

var _ AttachmentUseCase = &AttachmentUseCaseImpl{}

func NewAttachmentUseCase(AttachmentRepository AttachmentRepository) *AttachmentUseCaseImpl {
	return &AttachmentUseCaseImpl{AttachmentRepository}
}

// ListAttachments oldest first
func (au *AttachmentUseCaseImpl) ListAttachments(ctx context.Context, courseID string) ([]*Attachment, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "AttachmentUseCaseImpl.ListAttachments", "service")
	defer apmSpan.End()

	if err := domain.Required("course_id", courseID); err != nil {
		return nil, err
	}
	return au.AttachmentRepository.ListAttachments(ctx, courseID)
}

func (au *AttachmentUseCaseImpl) GetAttachment(ctx context.Context, id string) (*Attachment, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "AttachmentUseCaseImpl.GetAttachment", "service")
	defer apmSpan.End()

	if err := domain.Required("attachmentId", id); err != nil {
		return nil, err
	}
	a, err := au.AttachmentRepository.FindAttachment(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (au *AttachmentUseCaseImpl) CreateAttachment(ctx context.Context, attachment *Attachment) (*Attachment, error) {
	apmSpan, ctx := apm.StartSpan(ctx, "AttachmentUseCaseImpl.CreateAttachment", "service")
	defer apmSpan.End()

	if err := domain.Required("course_id", attachment.CourseID, "name", attachment.Name, "url", attachment.URL); err != nil {
		return nil, err
	}
	if err := au.AttachmentRepository.SaveAttachment(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

func (au *AttachmentUseCaseImpl) DeleteAttachment(ctx context.Context, id string) error {
	apmSpan, ctx := apm.StartSpan(ctx, "AttachmentUseCaseImpl.DeleteAttachment", "service")
	defer apmSpan.End()

	if err := domain.Required("attachmentId", id); err != nil {
		return err
	}
	ok, err := au.AttachmentRepository.DeleteAttachment(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
