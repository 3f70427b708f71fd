package repositories

import (
	"context"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
)

// ProgressRepositoryFacade persists per-user progress records.
type ProgressRepositoryFacade interface {
	// CreateProgress stores a new empty record. An existing record for the
	// same user name returns apperrors.ErrDuplicate.
	CreateProgress(ctx context.Context, record domain.ProgressRecord) error

	// FindProgressByUserName returns apperrors.ErrNotFound when absent.
	FindProgressByUserName(ctx context.Context, userName string) (*domain.ProgressRecord, error)

	// SaveProgress overwrites the entries of an existing record.
	SaveProgress(ctx context.Context, record domain.ProgressRecord) error

	ListProgress(ctx context.Context) ([]domain.ProgressRecord, error)

	// DeleteProgressByUserName is a no-op when no record exists.
	DeleteProgressByUserName(ctx context.Context, userName string) error
}
