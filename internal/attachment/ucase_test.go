package attachment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
	"github.com/pot-code/course-platform/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentUseCase(t *testing.T) {
	ctx := context.Background()
	au := NewAttachmentUseCase(NewAttachmentRepository(storetest.NewDB(t), uuid.NewNanoIDGenerator(12)))

	slides, err := au.CreateAttachment(ctx, &Attachment{CourseID: "c1", Name: "slides.pdf", URL: "https://cdn/slides.pdf"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = au.CreateAttachment(ctx, &Attachment{CourseID: "c1", Name: "code.zip", URL: "https://cdn/code.zip"})
	require.NoError(t, err)
	_, err = au.CreateAttachment(ctx, &Attachment{CourseID: "c2", Name: "other.pdf", URL: "https://cdn/other.pdf"})
	require.NoError(t, err)

	list, err := au.ListAttachments(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "slides.pdf", list[0].Name)
	assert.Equal(t, "code.zip", list[1].Name)

	got, err := au.GetAttachment(ctx, slides.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/slides.pdf", got.URL)

	require.NoError(t, au.DeleteAttachment(ctx, slides.ID))
	assert.True(t, errors.Is(au.DeleteAttachment(ctx, slides.ID), domain.ErrNotFound))
	_, err = au.GetAttachment(ctx, slides.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAttachmentUseCase_Validation(t *testing.T) {
	ctx := context.Background()
	au := NewAttachmentUseCase(NewAttachmentRepository(storetest.NewDB(t), uuid.NewNanoIDGenerator(12)))

	_, err := au.ListAttachments(ctx, "")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	_, err = au.CreateAttachment(ctx, &Attachment{CourseID: "c1", Name: "slides.pdf"})
	var argErr *domain.ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, "url", argErr.Field)
}
