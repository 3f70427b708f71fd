package handlers

import (
	"net/http"

	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type progressHandler struct {
	progressService portssvc.ProgressSvcFacade
}

func registerProgressRoutes(rg *gin.RouterGroup, progressService portssvc.ProgressSvcFacade) {
	h := &progressHandler{progressService: progressService}
	statusData := rg.Group("/user/statusData")
	{
		statusData.POST("", h.createProgress)
		statusData.PUT("", h.updateProgress)
		statusData.GET("", h.listProgress)
	}
}

// createProgress godoc
// @Summary Create a progress record
// @Tags progress
// @Accept json
// @Produce json
// @Param body body dto.CreateProgressRequest true "Owner username"
// @Success 200 {object} dto.ProgressResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 409 {object} dto.MessageResponse
// @Router /user/statusData [post]
func (h *progressHandler) createProgress(c *gin.Context) {
	var req dto.CreateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.progressService.CreateProgress(c.Request.Context(), req.UserName)
	if err != nil {
		respondError(c, err, "Failed to create progress record")
		return
	}
	c.JSON(http.StatusOK, dto.ProgressResponse{
		Success: true,
		Message: "Status data created successfully",
		Data:    record,
	})
}

// updateProgress godoc
// @Summary Set the progress of one chapter
// @Description Replaces the value of chapterName, appending the chapter when it is new.
// @Tags progress
// @Accept json
// @Produce json
// @Param body body dto.UpdateProgressRequest true "Chapter progress"
// @Success 200 {object} dto.ProgressResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Router /user/statusData [put]
func (h *progressHandler) updateProgress(c *gin.Context) {
	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.progressService.UpdateProgress(c.Request.Context(), req.UserName, req.ChapterName, *req.Data)
	if err != nil {
		respondError(c, err, "Failed to update progress record")
		return
	}
	c.JSON(http.StatusOK, dto.ProgressResponse{
		Success: true,
		Message: "Status data updated successfully",
		Data:    record,
	})
}

// listProgress godoc
// @Summary List all progress records
// @Tags progress
// @Produce json
// @Success 200 {array} domain.ProgressRecord
// @Failure 404 {object} dto.MessageResponse
// @Router /user/statusData [get]
func (h *progressHandler) listProgress(c *gin.Context) {
	records, err := h.progressService.ListProgress(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list progress records")
		return
	}
	if records == nil {
		records = []domain.ProgressRecord{}
	}
	c.JSON(http.StatusOK, records)
}
