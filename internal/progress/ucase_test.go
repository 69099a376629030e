package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/uuid"
	"github.com/pot-code/course-platform/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressUseCase_SaveProgress(t *testing.T) {
	ctx := context.Background()
	conn := storetest.NewDB(t)
	seedCourses(t, conn)
	pu := NewProgressUseCase(NewProgressRepository(conn, uuid.NewNanoIDGenerator(12)))

	first, err := pu.SaveProgress(ctx, "u1", "l1", false)
	require.NoError(t, err)
	second, err := pu.SaveProgress(ctx, "u1", "l1", true)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "one record per (user, lecture)")
	assert.True(t, second.Completed)
	assert.False(t, second.LastAccessed.Before(first.LastAccessed))

	records, err := pu.ListProgress(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Completed)

	p, err := pu.CourseProgress(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 33, p)

	_, err = pu.SaveProgress(ctx, "u1", "", true)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestProgressUseCase_ListProgressByCourse(t *testing.T) {
	ctx := context.Background()
	conn := storetest.NewDB(t)
	seedCourses(t, conn)
	pu := NewProgressUseCase(NewProgressRepository(conn, uuid.NewNanoIDGenerator(12)))

	for _, lectureID := range []string{"l1", "l3", "other"} {
		_, err := pu.SaveProgress(ctx, "u1", lectureID, true)
		require.NoError(t, err)
	}

	records, err := pu.ListProgress(ctx, "u1", "c1")
	require.NoError(t, err)
	var lectures []string
	for _, r := range records {
		lectures = append(lectures, r.LectureID)
	}
	assert.ElementsMatch(t, []string{"l1", "l3"}, lectures)

	records, err = pu.ListProgress(ctx, "u1", "c2")
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = pu.ListProgress(ctx, "", "c1")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}
