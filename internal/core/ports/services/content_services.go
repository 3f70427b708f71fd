package services

import (
	"context"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProgressSvcFacade manages per-user chapter progress.
type ProgressSvcFacade interface {
	CreateProgress(ctx context.Context, userName string) (*domain.ProgressRecord, error)
	UpdateProgress(ctx context.Context, userName, chapterName string, data decimal.Decimal) (*domain.ProgressRecord, error)
	ListProgress(ctx context.Context) ([]domain.ProgressRecord, error)
}

// ViewSvcFacade manages the page-view counters.
type ViewSvcFacade interface {
	AddCourse(ctx context.Context, courseCode string, courseViewed, questionViewed bool) (*domain.SiteViews, error)
	RecordViews(ctx context.Context, inc domain.ViewIncrement) (*domain.SiteViews, error)
	GetViews(ctx context.Context) (*domain.SiteViews, error)
}
