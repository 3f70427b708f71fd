package models

import "time"

// SiteViews is the row layout of the singleton site_views table.
type SiteViews struct {
	TotalView       int64     `db:"total_view"`
	TotalBlogView   int64     `db:"total_blog_view"`
	TotalBlogReader int64     `db:"total_blog_reader"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// CourseViews is the row layout of the course_views table.
type CourseViews struct {
	CourseCode        string `db:"course_code"`
	TotalCourseView   int64  `db:"total_course_view"`
	TotalQuestionView int64  `db:"total_question_view"`
}
