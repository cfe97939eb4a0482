package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/repos"
	"github.com/fagame/backend/internal/types"
)

// AssistantPrefsUpdate carries the switches a parent can change. Pointers so
// a PUT can flip one switch without resetting the rest.
type AssistantPrefsUpdate struct {
	Enabled            *bool   `json:"enabled,omitempty"`
	SmartHints         *bool   `json:"smart_hints,omitempty"`
	AdaptiveDifficulty *bool   `json:"adaptive_difficulty,omitempty"`
	ProgressAnalysis   *bool   `json:"progress_analysis,omitempty"`
	ContentGeneration  *bool   `json:"content_generation,omitempty"`
	Personality        *string `json:"personality,omitempty"`
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetAssistantPrefs(ctx context.Context, userID uuid.UUID) (*types.AssistantPrefs, error)
	UpdateAssistantPrefs(ctx context.Context, userID uuid.UUID, update AssistantPrefsUpdate) (*types.AssistantPrefs, error)
}

type userService struct {
	log       *logger.Logger
	userRepo  repos.UserRepo
	prefsRepo repos.AssistantPrefsRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, prefsRepo repos.AssistantPrefsRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		log:       serviceLog,
		userRepo:  userRepo,
		prefsRepo: prefsRepo,
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetAssistantPrefs returns the stored preferences, or the all-off defaults
// when the user never touched them. The defaults are not persisted until the
// first update.
func (us *userService) GetAssistantPrefs(ctx context.Context, userID uuid.UUID) (*types.AssistantPrefs, error) {
	prefs, err := us.prefsRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.AssistantPrefs{UserID: userID, Personality: "encouraging"}, nil
		}
		return nil, err
	}
	return prefs, nil
}

func (us *userService) UpdateAssistantPrefs(ctx context.Context, userID uuid.UUID, update AssistantPrefsUpdate) (*types.AssistantPrefs, error) {
	prefs, err := us.GetAssistantPrefs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Enabled != nil {
		prefs.Enabled = *update.Enabled
	}
	if update.SmartHints != nil {
		prefs.SmartHints = *update.SmartHints
	}
	if update.AdaptiveDifficulty != nil {
		prefs.AdaptiveDifficulty = *update.AdaptiveDifficulty
	}
	if update.ProgressAnalysis != nil {
		prefs.ProgressAnalysis = *update.ProgressAnalysis
	}
	if update.ContentGeneration != nil {
		prefs.ContentGeneration = *update.ContentGeneration
	}
	if update.Personality != nil {
		switch *update.Personality {
		case "encouraging", "playful", "calm":
			prefs.Personality = *update.Personality
		default:
			return nil, fmt.Errorf("unknown personality %q", *update.Personality)
		}
	}

	updated, err := us.prefsRepo.Upsert(ctx, nil, prefs)
	if err != nil {
		return nil, fmt.Errorf("save assistant prefs: %w", err)
	}

	us.log.Info("assistant prefs updated",
		"user_id", userID,
		"enabled", updated.Enabled)
	return updated, nil
}
