package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fagame/backend/internal/gameplay"
	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/repos"
	"github.com/fagame/backend/internal/types"
)

// GameService owns the game catalog: persistence of validated drafts, the
// ownership rules on mutation, likes, and play session bookkeeping.
type GameService interface {
	CreateGame(ctx context.Context, ownerID uuid.UUID, draft *GameDraft, isPublic bool) (*types.Game, error)
	GetGame(ctx context.Context, viewerID, gameID uuid.UUID) (*types.Game, error)
	ListGames(ctx context.Context, filter repos.GameListFilter) ([]*types.Game, error)
	UpdateGame(ctx context.Context, userID, gameID uuid.UUID, req TemplateRequest, isPublic *bool) (*types.Game, error)
	DeleteGame(ctx context.Context, userID, gameID uuid.UUID) error
	ToggleLike(ctx context.Context, userID, gameID uuid.UUID) (bool, error)
	StartPlay(ctx context.Context, playerID, gameID uuid.UUID) (*types.PlaySession, error)
	UpdateSession(ctx context.Context, playerID, sessionID uuid.UUID, progress json.RawMessage, score *int) (*types.PlaySession, error)
	CompleteSession(ctx context.Context, playerID, sessionID uuid.UUID, score *int, progress json.RawMessage) (*types.PlaySession, error)
}

type gameService struct {
	db               *gorm.DB
	log              *logger.Logger
	gameRepo         repos.GameRepo
	gameLikeRepo     repos.GameLikeRepo
	playSessionRepo  repos.PlaySessionRepo
	thumbnailService ThumbnailService
	trendingService  TrendingService
}

func NewGameService(
	db *gorm.DB,
	log *logger.Logger,
	gameRepo repos.GameRepo,
	gameLikeRepo repos.GameLikeRepo,
	playSessionRepo repos.PlaySessionRepo,
	thumbnailService ThumbnailService,
	trendingService TrendingService,
) GameService {
	serviceLog := log.With("service", "GameService")
	return &gameService{
		db:               db,
		log:              serviceLog,
		gameRepo:         gameRepo,
		gameLikeRepo:     gameLikeRepo,
		playSessionRepo:  playSessionRepo,
		thumbnailService: thumbnailService,
		trendingService:  trendingService,
	}
}

func (gs *gameService) CreateGame(ctx context.Context, ownerID uuid.UUID, draft *GameDraft, isPublic bool) (*types.Game, error) {
	if draft == nil {
		return nil, fmt.Errorf("nil draft")
	}
	if err := gameplay.ValidateParams(draft.Template, draft.TemplateParams); err != nil {
		return nil, err
	}

	goals, err := json.Marshal(draft.EducationalGoals)
	if err != nil {
		return nil, fmt.Errorf("marshal goals: %w", err)
	}
	tags, err := json.Marshal(draft.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	game := &types.Game{
		ID:               uuid.New(),
		OwnerID:          ownerID,
		Title:            draft.Title,
		Description:      draft.Description,
		Template:         string(draft.Template),
		AgeGroup:         draft.AgeGroup,
		EducationalGoals: datatypes.JSON(goals),
		TemplateParams:   datatypes.JSON(draft.TemplateParams),
		Tags:             datatypes.JSON(tags),
		IsPublic:         isPublic,
	}

	if gs.thumbnailService != nil {
		url, err := gs.thumbnailService.CreateGameThumbnail(game.ID, game.Title, game.Template)
		if err != nil {
			gs.log.Warn("thumbnail generation failed, continuing without", "game_id", game.ID, "error", err)
		} else {
			game.ThumbnailURL = url
		}
	}

	if _, err := gs.gameRepo.Create(ctx, nil, []*types.Game{game}); err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	gs.log.Info("game created",
		"game_id", game.ID,
		"template", game.Template,
		"owner_id", ownerID)
	return game, nil
}

func (gs *gameService) GetGame(ctx context.Context, viewerID, gameID uuid.UUID) (*types.Game, error) {
	game, err := gs.gameRepo.GetByID(ctx, nil, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Private games exist only for their owner.
	if !game.IsPublic && game.OwnerID != viewerID {
		return nil, ErrNotFound
	}
	return game, nil
}

func (gs *gameService) ListGames(ctx context.Context, filter repos.GameListFilter) ([]*types.Game, error) {
	return gs.gameRepo.List(ctx, nil, filter)
}

func (gs *gameService) UpdateGame(ctx context.Context, userID, gameID uuid.UUID, req TemplateRequest, isPublic *bool) (*types.Game, error) {
	game, err := gs.ownedGame(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		game.Title = req.Title
	}
	if req.Description != "" {
		game.Description = req.Description
	}
	if req.AgeGroup != "" {
		game.AgeGroup = req.AgeGroup
	}
	if req.Template != "" && req.Template != game.Template {
		if _, ok := gameplay.ParseTemplate(req.Template); !ok {
			return nil, &gameplay.ValidationError{Field: "template", Reason: fmt.Sprintf("unknown template %q", req.Template)}
		}
		if len(req.TemplateParams) == 0 {
			return nil, &gameplay.ValidationError{Field: "templateParams", Reason: "required when changing template"}
		}
		game.Template = req.Template
	}
	if len(req.TemplateParams) > 0 {
		if err := gameplay.ValidateParams(gameplay.Template(game.Template), req.TemplateParams); err != nil {
			return nil, err
		}
		game.TemplateParams = datatypes.JSON(req.TemplateParams)
	}
	if req.EducationalGoals != nil {
		goals, err := json.Marshal(req.EducationalGoals)
		if err != nil {
			return nil, fmt.Errorf("marshal goals: %w", err)
		}
		game.EducationalGoals = datatypes.JSON(goals)
	}
	if req.Tags != nil {
		tags, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, fmt.Errorf("marshal tags: %w", err)
		}
		game.Tags = datatypes.JSON(tags)
	}
	if isPublic != nil {
		game.IsPublic = *isPublic
	}

	updated, err := gs.gameRepo.Update(ctx, nil, game)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	return updated, nil
}

func (gs *gameService) DeleteGame(ctx context.Context, userID, gameID uuid.UUID) error {
	game, err := gs.ownedGame(ctx, userID, gameID)
	if err != nil {
		return err
	}
	if err := gs.gameRepo.Delete(ctx, nil, game.ID); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if gs.thumbnailService != nil {
		gs.thumbnailService.DeleteGameThumbnail(game.ThumbnailURL)
	}
	gs.log.Info("game deleted", "game_id", game.ID, "owner_id", userID)
	return nil
}

// ToggleLike flips the caller's like on a game and returns the new state.
func (gs *gameService) ToggleLike(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	if _, err := gs.GetGame(ctx, userID, gameID); err != nil {
		return false, err
	}

	var liked bool
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := gs.gameLikeRepo.Exists(ctx, tx, gameID, userID)
		if err != nil {
			return err
		}
		if exists {
			if err := gs.gameLikeRepo.Delete(ctx, tx, gameID, userID); err != nil {
				return err
			}
			liked = false
			return gs.gameRepo.AdjustLikes(ctx, tx, gameID, -1)
		}
		if _, err := gs.gameLikeRepo.Create(ctx, tx, &types.GameLike{GameID: gameID, UserID: userID}); err != nil {
			return err
		}
		liked = true
		return gs.gameRepo.AdjustLikes(ctx, tx, gameID, 1)
	})
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	return liked, nil
}

func (gs *gameService) StartPlay(ctx context.Context, playerID, gameID uuid.UUID) (*types.PlaySession, error) {
	if _, err := gs.GetGame(ctx, playerID, gameID); err != nil {
		return nil, err
	}

	session := &types.PlaySession{
		GameID:    gameID,
		PlayerID:  playerID,
		StartedAt: time.Now(),
	}
	if _, err := gs.playSessionRepo.Create(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("create play session: %w", err)
	}
	if err := gs.gameRepo.IncrementPlays(ctx, nil, gameID); err != nil {
		gs.log.Warn("failed to bump play counter", "game_id", gameID, "error", err)
	}
	if gs.trendingService != nil {
		gs.trendingService.RecordPlay(ctx, gameID)
	}
	return session, nil
}

func (gs *gameService) UpdateSession(ctx context.Context, playerID, sessionID uuid.UUID, progress json.RawMessage, score *int) (*types.PlaySession, error) {
	session, err := gs.ownedSession(ctx, playerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CompletedAt != nil {
		return nil, &gameplay.ValidationError{Field: "session", Reason: "already completed"}
	}

	if len(progress) > 0 {
		session.Progress = datatypes.JSON(progress)
	}
	if score != nil {
		session.Score = score
	}
	return gs.playSessionRepo.Update(ctx, nil, session)
}

func (gs *gameService) CompleteSession(ctx context.Context, playerID, sessionID uuid.UUID, score *int, progress json.RawMessage) (*types.PlaySession, error) {
	session, err := gs.ownedSession(ctx, playerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CompletedAt != nil {
		return session, nil
	}

	now := time.Now()
	session.CompletedAt = &now
	if score != nil {
		session.Score = score
	}
	if len(progress) > 0 {
		session.Progress = datatypes.JSON(progress)
	}
	updated, err := gs.playSessionRepo.Update(ctx, nil, session)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	gs.log.Info("play session completed",
		"session_id", sessionID,
		"game_id", session.GameID,
		"duration_sec", int(now.Sub(session.StartedAt).Seconds()))
	return updated, nil
}

func (gs *gameService) ownedGame(ctx context.Context, userID, gameID uuid.UUID) (*types.Game, error) {
	game, err := gs.gameRepo.GetByID(ctx, nil, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if game.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return game, nil
}

func (gs *gameService) ownedSession(ctx context.Context, playerID, sessionID uuid.UUID) (*types.PlaySession, error) {
	session, err := gs.playSessionRepo.GetByID(ctx, nil, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if session.PlayerID != playerID {
		return nil, ErrNotOwner
	}
	return session, nil
}
