package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/freshmanexams/fe_backend/internal/core/ports/services"
	"github.com/freshmanexams/fe_backend/internal/dto"
	"github.com/freshmanexams/fe_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const contactFieldsRequired = "All fields are required"

type emailHandler struct {
	contactService portssvc.ContactSvcFacade
}

func registerEmailRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade, limit gin.HandlerFunc) {
	h := &emailHandler{contactService: contactService}
	rg.POST("/email", limit, h.sendContact)
}

// sendContact godoc
// @Summary Send a contact-form message
// @Description Relays the message to the site inbox by email.
// @Tags contact
// @Accept json
// @Produce json
// @Param body body dto.ContactRequest true "Message"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} dto.MessageResponse
// @Failure 429 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Router /email [post]
func (h *emailHandler) sendContact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromContext(c).Info("Invalid contact payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: contactFieldsRequired})
		return
	}

	sent, err := h.contactService.Relay(c.Request.Context(), req.ToDomain())
	if err != nil {
		respondError(c, err, "Failed to relay contact message")
		return
	}
	c.JSON(http.StatusOK, dto.ContactResponse{
		Success: true,
		Message: "Email sent successfully",
		Email:   sent.Email,
	})
}
