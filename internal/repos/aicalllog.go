package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/types"
)

type AICallLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.AICallLog) (*types.AICallLog, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AICallLog, error)
}

type aiCallLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAICallLogRepo(db *gorm.DB, baseLog *logger.Logger) AICallLogRepo {
	repoLog := baseLog.With("repo", "AICallLogRepo")
	return &aiCallLogRepo{db: db, log: repoLog}
}

func (alr *aiCallLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.AICallLog) (*types.AICallLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = alr.db
	}

	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (alr *aiCallLogRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AICallLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = alr.db
	}

	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.AICallLog
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
