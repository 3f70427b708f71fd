package repositories

import (
	"context"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
)

// ViewRepositoryFacade persists the site-wide view counters.
type ViewRepositoryFacade interface {
	// GetViews returns apperrors.ErrNotFound until the counters exist.
	GetViews(ctx context.Context) (*domain.SiteViews, error)

	// AddCourse creates the counters document if needed and appends a course entry.
	// An existing course code returns apperrors.ErrDuplicate.
	AddCourse(ctx context.Context, course domain.CourseViews) (*domain.SiteViews, error)

	// Increment bumps the selected counters atomically. Returns
	// apperrors.ErrNotFound when the counters do not exist yet.
	Increment(ctx context.Context, inc domain.ViewIncrement) (*domain.SiteViews, error)
}
