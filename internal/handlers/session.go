package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fagame/backend/internal/requestdata"
	"github.com/fagame/backend/internal/services"
)

type SessionHandler struct {
	gameService services.GameService
}

func NewSessionHandler(gameService services.GameService) *SessionHandler {
	return &SessionHandler{gameService: gameService}
}

func (sh *SessionHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	var req struct {
		Progress json.RawMessage `json:"progress,omitempty"`
		Score    *int            `json:"score,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	session, err := sh.gameService.UpdateSession(c.Request.Context(), rd.UserID, sessionID, req.Progress, req.Score)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}

func (sh *SessionHandler) Complete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	var req struct {
		Score    *int            `json:"score,omitempty"`
		Progress json.RawMessage `json:"progress,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	session, err := sh.gameService.CompleteSession(c.Request.Context(), rd.UserID, sessionID, req.Score, req.Progress)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}
