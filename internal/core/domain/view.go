package domain

import "time"

// SiteViews holds the site-wide page-view counters.
type SiteViews struct {
	TotalView       int64         `json:"TotalView"`
	TotalBlogView   int64         `json:"TotalBlogView"`
	TotalBlogReader int64         `json:"TotalBlogReader"`
	Courses         []CourseViews `json:"CorseView"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// CourseViews holds the counters of one course.
type CourseViews struct {
	CourseCode        string `json:"CourseCode"`
	TotalCourseView   int64  `json:"TotalCourseView"`
	TotalQuestionView int64  `json:"TotalQuestionView"`
}

// ViewIncrement selects which counters to bump by one.
type ViewIncrement struct {
	TotalView         bool
	TotalBlogView     bool
	TotalBlogReader   bool
	TotalCourseView   bool
	TotalQuestionView bool
	CourseCode        string
}

// TouchesCourse reports whether a course counter is selected.
func (v ViewIncrement) TouchesCourse() bool {
	return v.TotalCourseView || v.TotalQuestionView
}
