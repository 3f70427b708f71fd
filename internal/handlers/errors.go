package handlers

import (
	"log/slog"
	"net/http"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/dto"
	"github.com/freshmanexams/fe_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes the status and client-safe message err maps to.
// Server errors are logged with their detail, which never reaches the client.
func respondError(c *gin.Context, err error, logMsg string) {
	code, message := apperrors.HTTPStatus(err)
	logger := middleware.GetLoggerFromContext(c)
	if code >= http.StatusInternalServerError {
		logger.Error(logMsg, slog.String("error", err.Error()))
	} else {
		logger.Info(logMsg, slog.Int("status", code), slog.String("error", err.Error()))
	}
	c.JSON(code, dto.MessageResponse{Success: false, Message: message})
}

// respondBindError reports a request body that failed to bind or validate.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Info("Invalid request payload", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.MessageResponse{Success: false, Message: "Invalid request payload: " + err.Error()})
}
