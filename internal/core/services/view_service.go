package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
)

type viewService struct {
	BaseService
	views portsrepo.ViewRepositoryFacade
}

func NewViewService(views portsrepo.ViewRepositoryFacade, opts ...ServiceOption) portssvc.ViewSvcFacade {
	return &viewService{BaseService: newBaseService(opts...), views: views}
}

// AddCourse registers counters for a course. Each flag seeds its counter with one view.
func (s *viewService) AddCourse(ctx context.Context, courseCode string, courseViewed, questionViewed bool) (*domain.SiteViews, error) {
	courseCode = strings.TrimSpace(courseCode)
	if courseCode == "" {
		return nil, apperrors.NewBadRequestError("CourseCode is required")
	}

	views, err := s.views.AddCourse(ctx, domain.CourseViews{
		CourseCode:        courseCode,
		TotalCourseView:   seed(courseViewed),
		TotalQuestionView: seed(questionViewed),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Course already exists")
		}
		return nil, fmt.Errorf("failed to add course views: %w", err)
	}
	s.LogInfo(ctx, "Course view counters added", slog.String("course_code", courseCode))
	return views, nil
}

func seed(flag bool) int64 {
	if flag {
		return 1
	}
	return 0
}

func (s *viewService) RecordViews(ctx context.Context, inc domain.ViewIncrement) (*domain.SiteViews, error) {
	views, err := s.views.Increment(ctx, inc)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to record views: %w", err)
	}
	return views, nil
}

func (s *viewService) GetViews(ctx context.Context) (*domain.SiteViews, error) {
	views, err := s.views.GetViews(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get views: %w", err)
	}
	return views, nil
}
