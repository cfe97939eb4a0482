package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/types"
)

// GameListFilter narrows List. Zero values mean "no constraint"; IsPublic is
// a pointer so callers can ask for private games explicitly.
type GameListFilter struct {
	Template string
	AgeGroup string
	OwnerID  uuid.UUID
	IsPublic *bool
	Limit    int
}

type GameRepo interface {
	Create(ctx context.Context, tx *gorm.DB, games []*types.Game) ([]*types.Game, error)
	GetByID(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) (*types.Game, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.Game, error)
	List(ctx context.Context, tx *gorm.DB, filter GameListFilter) ([]*types.Game, error)
	Update(ctx context.Context, tx *gorm.DB, game *types.Game) (*types.Game, error)
	Delete(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) error
	IncrementPlays(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) error
	AdjustLikes(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, delta int) error
}

type gameRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGameRepo(db *gorm.DB, baseLog *logger.Logger) GameRepo {
	repoLog := baseLog.With("repo", "GameRepo")
	return &gameRepo{db: db, log: repoLog}
}

func (gr *gameRepo) Create(ctx context.Context, tx *gorm.DB, games []*types.Game) ([]*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if len(games) == 0 {
		return []*types.Game{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&games).Error; err != nil {
		return nil, err
	}

	return games, nil
}

func (gr *gameRepo) GetByID(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) (*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var result types.Game
	if err := transaction.WithContext(ctx).
		Where("id = ?", gameID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *gameRepo) GetByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Game
	if len(gameIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", gameIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *gameRepo) List(ctx context.Context, tx *gorm.DB, filter GameListFilter) ([]*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	query := transaction.WithContext(ctx).Model(&types.Game{})
	if filter.Template != "" {
		query = query.Where("template = ?", filter.Template)
	}
	if filter.AgeGroup != "" {
		query = query.Where("age_group = ?", filter.AgeGroup)
	}
	if filter.OwnerID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.IsPublic != nil {
		query = query.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var results []*types.Game
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (gr *gameRepo) Update(ctx context.Context, tx *gorm.DB, game *types.Game) (*types.Game, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if err := transaction.WithContext(ctx).Save(game).Error; err != nil {
		return nil, err
	}
	return game, nil
}

func (gr *gameRepo) Delete(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", gameID).
		Delete(&types.Game{}).Error
}

func (gr *gameRepo) IncrementPlays(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Game{}).
		Where("id = ?", gameID).
		UpdateColumn("plays", gorm.Expr("plays + 1")).Error
}

func (gr *gameRepo) AdjustLikes(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Game{}).
		Where("id = ?", gameID).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}
