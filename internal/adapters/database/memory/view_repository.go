package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
)

type ViewRepository struct {
	store *Store
}

var _ portsrepo.ViewRepositoryFacade = (*ViewRepository)(nil)

func copyViewsLocked(v *domain.SiteViews) *domain.SiteViews {
	out := *v
	out.Courses = make([]domain.CourseViews, len(v.Courses))
	copy(out.Courses, v.Courses)
	return &out
}

func (r *ViewRepository) GetViews(_ context.Context) (*domain.SiteViews, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.views == nil {
		return nil, apperrors.ErrNotFound
	}
	return copyViewsLocked(s.views), nil
}

func (r *ViewRepository) AddCourse(_ context.Context, course domain.CourseViews) (*domain.SiteViews, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.views == nil {
		s.views = &domain.SiteViews{Courses: []domain.CourseViews{}}
	}
	for _, c := range s.views.Courses {
		if c.CourseCode == course.CourseCode {
			return nil, fmt.Errorf("course %s already has view counters: %w", course.CourseCode, apperrors.ErrDuplicate)
		}
	}
	s.views.Courses = append(s.views.Courses, course)
	s.views.UpdatedAt = time.Now().UTC()
	return copyViewsLocked(s.views), nil
}

func (r *ViewRepository) Increment(_ context.Context, inc domain.ViewIncrement) (*domain.SiteViews, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.views == nil {
		return nil, apperrors.ErrNotFound
	}
	v := s.views
	if inc.TotalView {
		v.TotalView++
	}
	if inc.TotalBlogView {
		v.TotalBlogView++
	}
	if inc.TotalBlogReader {
		v.TotalBlogReader++
	}
	if inc.TouchesCourse() {
		for i := range v.Courses {
			if v.Courses[i].CourseCode != inc.CourseCode {
				continue
			}
			if inc.TotalCourseView {
				v.Courses[i].TotalCourseView++
			}
			if inc.TotalQuestionView {
				v.Courses[i].TotalQuestionView++
			}
			break
		}
	}
	v.UpdatedAt = time.Now().UTC()
	return copyViewsLocked(v), nil
}
