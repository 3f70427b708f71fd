package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryProvider().ProgressRepo

	require.NoError(t, repo.CreateProgress(ctx, domain.ProgressRecord{ID: "p1", UserName: "alice"}))
	assert.ErrorIs(t, repo.CreateProgress(ctx, domain.ProgressRecord{ID: "p2", UserName: "alice"}), apperrors.ErrDuplicate)

	rec, err := repo.FindProgressByUserName(ctx, "alice")
	require.NoError(t, err)
	rec.SetChapter("ch1", decimal.RequireFromString("0.5"))
	require.NoError(t, repo.SaveProgress(ctx, *rec))

	stored, err := repo.FindProgressByUserName(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, stored.Entries, 1)
	assert.True(t, stored.Entries[0].Data.Equal(decimal.RequireFromString("0.5")))

	// Mutating a returned copy must not leak into the store.
	stored.Entries[0].ChapterName = "mutated"
	again, _ := repo.FindProgressByUserName(ctx, "alice")
	assert.Equal(t, "ch1", again.Entries[0].ChapterName)

	require.NoError(t, repo.DeleteProgressByUserName(ctx, "alice"))
	_, err = repo.FindProgressByUserName(ctx, "alice")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestViewRepository_AddAndIncrement(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryProvider().ViewRepo

	_, err := repo.GetViews(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.Increment(ctx, domain.ViewIncrement{TotalView: true})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.AddCourse(ctx, domain.CourseViews{CourseCode: "MATH101", TotalCourseView: 1})
	require.NoError(t, err)
	_, err = repo.AddCourse(ctx, domain.CourseViews{CourseCode: "MATH101"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Increment(ctx, domain.ViewIncrement{TotalView: true, TotalCourseView: true, CourseCode: "MATH101"})
		}()
	}
	wg.Wait()

	views, err := repo.Increment(ctx, domain.ViewIncrement{TotalQuestionView: true, CourseCode: "UNKNOWN"})
	require.NoError(t, err)
	assert.EqualValues(t, 100, views.TotalView)
	assert.EqualValues(t, 101, views.Courses[0].TotalCourseView)
	assert.EqualValues(t, 0, views.Courses[0].TotalQuestionView)
}
