package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/types"
)

type GameLikeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, like *types.GameLike) (*types.GameLike, error)
	Get(ctx context.Context, tx *gorm.DB, gameID, userID uuid.UUID) (*types.GameLike, error)
	Exists(ctx context.Context, tx *gorm.DB, gameID, userID uuid.UUID) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, gameID, userID uuid.UUID) error
}

type gameLikeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGameLikeRepo(db *gorm.DB, baseLog *logger.Logger) GameLikeRepo {
	repoLog := baseLog.With("repo", "GameLikeRepo")
	return &gameLikeRepo{db: db, log: repoLog}
}

func (glr *gameLikeRepo) Create(ctx context.Context, tx *gorm.DB, like *types.GameLike) (*types.GameLike, error) {
	transaction := tx
	if transaction == nil {
		transaction = glr.db
	}

	if err := transaction.WithContext(ctx).Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

func (glr *gameLikeRepo) Get(ctx context.Context, tx *gorm.DB, gameID, userID uuid.UUID) (*types.GameLike, error) {
	transaction := tx
	if transaction == nil {
		transaction = glr.db
	}

	var result types.GameLike
	if err := transaction.WithContext(ctx).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (glr *gameLikeRepo) Exists(ctx context.Context, tx *gorm.DB, gameID, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = glr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.GameLike{}).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (glr *gameLikeRepo) Delete(ctx context.Context, tx *gorm.DB, gameID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = glr.db
	}

	return transaction.WithContext(ctx).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Delete(&types.GameLike{}).Error
}
