package handlers

import (
	"net/http"

	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type viewHandler struct {
	viewService portssvc.ViewSvcFacade
}

func registerViewRoutes(rg *gin.RouterGroup, viewService portssvc.ViewSvcFacade) {
	h := &viewHandler{viewService: viewService}
	views := rg.Group("/View")
	{
		views.POST("", h.addCourse)
		views.PUT("", h.recordViews)
		views.GET("", h.getViews)
	}
}

// addCourse godoc
// @Summary Register a course for view counting
// @Description Creates the counters of a course. Each flag seeds its counter with 1 instead of 0.
// @Tags views
// @Accept json
// @Produce json
// @Param body body dto.CreateViewRequest true "Course"
// @Success 201 {object} domain.SiteViews
// @Failure 400 {object} dto.MessageResponse
// @Failure 409 {object} dto.MessageResponse
// @Router /View [post]
func (h *viewHandler) addCourse(c *gin.Context) {
	var req dto.CreateViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	views, err := h.viewService.AddCourse(c.Request.Context(), req.CourseCode, req.TotalCourseView, req.TotalQuestionView)
	if err != nil {
		respondError(c, err, "Failed to add course view counters")
		return
	}
	c.JSON(http.StatusCreated, views)
}

// recordViews godoc
// @Summary Increment view counters
// @Description Every true flag bumps its counter by one. Course flags apply to CourseCode.
// @Tags views
// @Accept json
// @Produce json
// @Param body body dto.UpdateViewRequest true "Counters to bump"
// @Success 200 {object} domain.SiteViews
// @Failure 400 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Router /View [put]
func (h *viewHandler) recordViews(c *gin.Context) {
	var req dto.UpdateViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	views, err := h.viewService.RecordViews(c.Request.Context(), req.ToViewIncrement())
	if err != nil {
		respondError(c, err, "Failed to record views")
		return
	}
	c.JSON(http.StatusOK, views)
}

// getViews godoc
// @Summary Read view counters
// @Tags views
// @Produce json
// @Success 200 {object} domain.SiteViews
// @Failure 404 {object} dto.MessageResponse
// @Router /View [get]
func (h *viewHandler) getViews(c *gin.Context) {
	views, err := h.viewService.GetViews(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to read view counters")
		return
	}
	c.JSON(http.StatusOK, views)
}
