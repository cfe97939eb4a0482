package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/types"
)

type PlaySessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.PlaySession) (*types.PlaySession, error)
	GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.PlaySession, error)
	ListByPlayer(ctx context.Context, tx *gorm.DB, playerID uuid.UUID, limit int) ([]*types.PlaySession, error)
	ListByGame(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, limit int) ([]*types.PlaySession, error)
	Update(ctx context.Context, tx *gorm.DB, session *types.PlaySession) (*types.PlaySession, error)
}

type playSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaySessionRepo(db *gorm.DB, baseLog *logger.Logger) PlaySessionRepo {
	repoLog := baseLog.With("repo", "PlaySessionRepo")
	return &playSessionRepo{db: db, log: repoLog}
}

func (psr *playSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.PlaySession) (*types.PlaySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (psr *playSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.PlaySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	var result types.PlaySession
	if err := transaction.WithContext(ctx).
		Where("id = ?", sessionID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (psr *playSessionRepo) ListByPlayer(ctx context.Context, tx *gorm.DB, playerID uuid.UUID, limit int) ([]*types.PlaySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	query := transaction.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.PlaySession
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (psr *playSessionRepo) ListByGame(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, limit int) ([]*types.PlaySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	query := transaction.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.PlaySession
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (psr *playSessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.PlaySession) (*types.PlaySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = psr.db
	}

	if err := transaction.WithContext(ctx).Save(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}
