package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fagame/backend/internal/gameplay"
	"github.com/fagame/backend/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondServiceError maps service errors onto HTTP statuses. Generation
// failures carry a stable code so the client can show the right parent-facing
// message (fix your key, try later, and so on).
func respondServiceError(c *gin.Context, err error) {
	var verr *gameplay.ValidationError
	if errors.As(err, &verr) {
		RespondError(c, http.StatusBadRequest, "validation", err)
		return
	}

	var genErr *services.GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case services.KindInvalidCredentials:
			RespondError(c, http.StatusBadGateway, "ai_key_invalid", err)
		case services.KindQuotaExceeded:
			RespondError(c, http.StatusTooManyRequests, "ai_quota_exceeded", err)
		case services.KindTransientNetwork:
			RespondError(c, http.StatusServiceUnavailable, "ai_unreachable", err)
		case services.KindMalformedResponse:
			RespondError(c, http.StatusBadGateway, "ai_malformed_response", err)
		default:
			RespondError(c, http.StatusBadGateway, "ai_generation_failed", err)
		}
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrNotOwner):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, services.ErrInvalidLogin):
		RespondError(c, http.StatusUnauthorized, "invalid_login", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
