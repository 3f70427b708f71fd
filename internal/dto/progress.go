package dto

import (
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProgressRequest is the body of POST /statusData.
type CreateProgressRequest struct {
	UserName string `json:"userName" binding:"required"`
}

// UpdateProgressRequest is the body of PUT /statusData.
type UpdateProgressRequest struct {
	UserName    string           `json:"userName" binding:"required"`
	ChapterName string           `json:"chapterName" binding:"required"`
	Data        *decimal.Decimal `json:"data" binding:"required"`
}

// ProgressResponse wraps a single record after a write.
type ProgressResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    *domain.ProgressRecord `json:"data"`
}
