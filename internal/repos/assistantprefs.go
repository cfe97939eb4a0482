package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/types"
)

type AssistantPrefsRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AssistantPrefs, error)
	Upsert(ctx context.Context, tx *gorm.DB, prefs *types.AssistantPrefs) (*types.AssistantPrefs, error)
}

type assistantPrefsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssistantPrefsRepo(db *gorm.DB, baseLog *logger.Logger) AssistantPrefsRepo {
	repoLog := baseLog.With("repo", "AssistantPrefsRepo")
	return &assistantPrefsRepo{db: db, log: repoLog}
}

func (apr *assistantPrefsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AssistantPrefs, error) {
	transaction := tx
	if transaction == nil {
		transaction = apr.db
	}

	var result types.AssistantPrefs
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (apr *assistantPrefsRepo) Upsert(ctx context.Context, tx *gorm.DB, prefs *types.AssistantPrefs) (*types.AssistantPrefs, error) {
	transaction := tx
	if transaction == nil {
		transaction = apr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"enabled",
				"smart_hints",
				"adaptive_difficulty",
				"progress_analysis",
				"content_generation",
				"personality",
				"updated_at",
			}),
		}).
		Create(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}
