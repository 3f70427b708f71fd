package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type progressService struct {
	BaseService
	progress portsrepo.ProgressRepositoryFacade
}

func NewProgressService(progress portsrepo.ProgressRepositoryFacade, opts ...ServiceOption) portssvc.ProgressSvcFacade {
	return &progressService{BaseService: newBaseService(opts...), progress: progress}
}

func (s *progressService) CreateProgress(ctx context.Context, userName string) (*domain.ProgressRecord, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, apperrors.NewBadRequestError("userName is required")
	}

	now := s.Now()
	record := domain.ProgressRecord{
		ID:        uuid.NewString(),
		UserName:  userName,
		Entries:   []domain.ProgressEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.progress.CreateProgress(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("User progress already exists")
		}
		return nil, fmt.Errorf("failed to create progress record in service: %w", err)
	}
	s.LogInfo(ctx, "Progress record created", slog.String("username", userName))
	return &record, nil
}

// UpdateProgress sets the value of one chapter, adding the chapter when new.
func (s *progressService) UpdateProgress(ctx context.Context, userName, chapterName string, data decimal.Decimal) (*domain.ProgressRecord, error) {
	if strings.TrimSpace(chapterName) == "" {
		return nil, apperrors.NewBadRequestError("chapterName is required")
	}
	record, err := s.progress.FindProgressByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(http.StatusNotFound, "User progress not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load progress record: %w", err)
	}

	record.SetChapter(chapterName, data)
	record.UpdatedAt = s.Now()
	if err := s.progress.SaveProgress(ctx, *record); err != nil {
		return nil, fmt.Errorf("failed to save progress record: %w", err)
	}
	s.LogDebug(ctx, "Progress updated",
		slog.String("username", userName), slog.String("chapter", chapterName))
	return record, nil
}

func (s *progressService) ListProgress(ctx context.Context) ([]domain.ProgressRecord, error) {
	records, err := s.progress.ListProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress records in service: %w", err)
	}
	if len(records) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return records, nil
}
