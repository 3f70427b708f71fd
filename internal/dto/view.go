package dto

import "github.com/freshmanexams/fe_backend/internal/core/domain"

// CreateViewRequest is the body of POST /View.
type CreateViewRequest struct {
	CourseCode        string `json:"CourseCode" binding:"required"`
	TotalCourseView   bool   `json:"TotalCourseView"`
	TotalQuestionView bool   `json:"TotalQuestionView"`
}

// UpdateViewRequest is the body of PUT /View. Each true flag bumps its counter by one.
type UpdateViewRequest struct {
	TotalView         bool   `json:"TotalView"`
	TotalBlogView     bool   `json:"TotalBlogView"`
	TotalBlogReader   bool   `json:"TotalBlogReader"`
	TotalCourseView   bool   `json:"TotalCourseView"`
	TotalQuestionView bool   `json:"TotalQuestionView"`
	CourseCode        string `json:"CourseCode"`
}

// ToViewIncrement converts the request into the domain increment selector.
func (r UpdateViewRequest) ToViewIncrement() domain.ViewIncrement {
	return domain.ViewIncrement{
		TotalView:         r.TotalView,
		TotalBlogView:     r.TotalBlogView,
		TotalBlogReader:   r.TotalBlogReader,
		TotalCourseView:   r.TotalCourseView,
		TotalQuestionView: r.TotalQuestionView,
		CourseCode:        r.CourseCode,
	}
}
