package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fagame/backend/internal/creative"
	"github.com/fagame/backend/internal/gameplay"
	"github.com/fagame/backend/internal/repos"
	"github.com/fagame/backend/internal/requestdata"
	"github.com/fagame/backend/internal/services"
)

type GameHandler struct {
	gameService     services.GameService
	synthesizer     services.SynthesizerService
	trendingService services.TrendingService
}

func NewGameHandler(
	gameService services.GameService,
	synthesizer services.SynthesizerService,
	trendingService services.TrendingService,
) *GameHandler {
	return &GameHandler{
		gameService:     gameService,
		synthesizer:     synthesizer,
		trendingService: trendingService,
	}
}

// createGameRequest covers all three creation paths. Source picks the path:
// "template" is a hand-filled form, "prompt" routes freeform text through the
// model, "selection" builds a catch game from a child's interpreted choices.
type createGameRequest struct {
	Source   string `json:"source"`
	IsPublic bool   `json:"is_public"`

	services.TemplateRequest

	Prompt string `json:"prompt,omitempty"`

	Selection    *creative.Selection `json:"selection,omitempty"`
	CreativeText string              `json:"creative_text,omitempty"`
}

func (gh *GameHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	var (
		draft *services.GameDraft
		err   error
	)
	switch req.Source {
	case "", "template":
		draft, err = gh.synthesizer.FromTemplate(c.Request.Context(), req.TemplateRequest)
	case "prompt":
		userID := rd.UserID
		draft, err = gh.synthesizer.FromPrompt(c.Request.Context(), &userID, req.Prompt)
	case "selection":
		sel := creative.Selection{}
		if req.Selection != nil {
			sel = *req.Selection
		}
		if req.CreativeText != "" {
			sel = sel.Merge(creative.Interpret(req.CreativeText))
		}
		draft, err = gh.synthesizer.FromSelection(sel)
	default:
		RespondError(c, http.StatusBadRequest, "bad_request",
			&gameplay.ValidationError{Field: "source", Reason: "must be template, prompt or selection"})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	game, err := gh.gameService.CreateGame(c.Request.Context(), rd.UserID, draft, req.IsPublic)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

func (gh *GameHandler) List(c *gin.Context) {
	pub := true
	filter := repos.GameListFilter{
		Template: c.Query("template"),
		AgeGroup: c.Query("ageGroup"),
		IsPublic: &pub,
		Limit:    parseLimit(c, 50),
	}

	games, err := gh.gameService.ListGames(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"games": games})
}

// ListMine returns the caller's games, private ones included.
func (gh *GameHandler) ListMine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	filter := repos.GameListFilter{
		Template: c.Query("template"),
		AgeGroup: c.Query("ageGroup"),
		OwnerID:  rd.UserID,
		Limit:    parseLimit(c, 50),
	}
	games, err := gh.gameService.ListGames(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"games": games})
}

func (gh *GameHandler) Trending(c *gin.Context) {
	games, err := gh.trendingService.TopGames(c.Request.Context(), parseLimit(c, 10))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"games": games})
}

func (gh *GameHandler) Get(c *gin.Context) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	viewerID := uuid.Nil
	if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
		viewerID = rd.UserID
	}

	game, err := gh.gameService.GetGame(c.Request.Context(), viewerID, gameID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, game)
}

func (gh *GameHandler) Update(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	var req struct {
		services.TemplateRequest
		IsPublic *bool `json:"is_public,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	game, err := gh.gameService.UpdateGame(c.Request.Context(), rd.UserID, gameID, req.TemplateRequest, req.IsPublic)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, game)
}

func (gh *GameHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	if err := gh.gameService.DeleteGame(c.Request.Context(), rd.UserID, gameID); err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (gh *GameHandler) ToggleLike(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	liked, err := gh.gameService.ToggleLike(c.Request.Context(), rd.UserID, gameID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"liked": liked})
}

func (gh *GameHandler) StartPlay(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}

	session, err := gh.gameService.StartPlay(c.Request.Context(), rd.UserID, gameID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func parseLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 200 {
		return fallback
	}
	return limit
}
