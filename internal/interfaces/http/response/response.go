package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Unknown errors become a 500 and are
// logged with their cause; the client only sees a generic message.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	c.JSON(appErr.Status, gin.H{
		"message": appErr.Message,
		"error":   appErr.Message, // older clients read this field
	})
}

// fromSentinel maps bare domain sentinels (as returned by repositories)
// to HTTP statuses.
func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists), errors.Is(err, domainerrors.ErrStateConflict):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput), errors.Is(err, domainerrors.ErrBadRequest):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized),
		errors.Is(err, domainerrors.ErrInvalidCredentials),
		errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden),
		errors.Is(err, domainerrors.ErrAccountPending),
		errors.Is(err, domainerrors.ErrAccountDenied):
		return domainerrors.Forbidden(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}
