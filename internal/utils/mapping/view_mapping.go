package mapping

import (
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/freshmanexams/fe_backend/internal/models"
)

// ToDomainSiteViews combines the singleton counters with the per-course rows.
func ToDomainSiteViews(m models.SiteViews, courses []models.CourseViews) domain.SiteViews {
	out := make([]domain.CourseViews, len(courses))
	for i, c := range courses {
		out[i] = domain.CourseViews{
			CourseCode:        c.CourseCode,
			TotalCourseView:   c.TotalCourseView,
			TotalQuestionView: c.TotalQuestionView,
		}
	}
	return domain.SiteViews{
		TotalView:       m.TotalView,
		TotalBlogView:   m.TotalBlogView,
		TotalBlogReader: m.TotalBlogReader,
		Courses:         out,
		UpdatedAt:       m.UpdatedAt,
	}
}
