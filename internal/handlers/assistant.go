package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fagame/backend/internal/requestdata"
	"github.com/fagame/backend/internal/services"
)

type AssistantHandler struct {
	assistantService services.AssistantService
	userService      services.UserService
}

func NewAssistantHandler(assistantService services.AssistantService, userService services.UserService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		userService:      userService,
	}
}

func (ah *AssistantHandler) GetConfig(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	prefs, err := ah.userService.GetAssistantPrefs(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, prefs)
}

func (ah *AssistantHandler) UpdateConfig(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var req services.AssistantPrefsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	prefs, err := ah.userService.UpdateAssistantPrefs(c.Request.Context(), rd.UserID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	RespondOK(c, prefs)
}

func (ah *AssistantHandler) Hint(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var req services.HintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	prefs, err := ah.userService.GetAssistantPrefs(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	hint, err := ah.assistantService.RequestHint(c.Request.Context(), prefs, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"hint": hint, "available": ah.assistantService.IsAvailable(prefs)})
}

func (ah *AssistantHandler) Encouragement(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var req struct {
		GameTitle string `json:"game_title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	prefs, err := ah.userService.GetAssistantPrefs(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	text, err := ah.assistantService.RequestEncouragement(c.Request.Context(), prefs, req.GameTitle)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"encouragement": text, "available": ah.assistantService.IsAvailable(prefs)})
}

func (ah *AssistantHandler) Difficulty(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var req struct {
		Mistakes     int `json:"mistakes"`
		CurrentLevel int `json:"current_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	prefs, err := ah.userService.GetAssistantPrefs(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	change := ah.assistantService.SuggestDifficultyChange(prefs, req.Mistakes, req.CurrentLevel)
	RespondOK(c, gin.H{"change": change})
}

func (ah *AssistantHandler) Analyze(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var req services.ProgressSummary
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	prefs, err := ah.userService.GetAssistantPrefs(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	analysis, err := ah.assistantService.AnalyzeProgress(c.Request.Context(), prefs, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"analysis": analysis, "available": ah.assistantService.IsAvailable(prefs)})
}
