package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fagame/backend/internal/repos"
	"github.com/fagame/backend/internal/types"
)

type fakeGameRepo struct {
	listGames  []*types.Game
	lastFilter repos.GameListFilter
}

func (f *fakeGameRepo) Create(ctx context.Context, tx *gorm.DB, games []*types.Game) ([]*types.Game, error) {
	return games, nil
}

func (f *fakeGameRepo) GetByID(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) (*types.Game, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGameRepo) GetByIDs(ctx context.Context, tx *gorm.DB, gameIDs []uuid.UUID) ([]*types.Game, error) {
	return nil, nil
}

func (f *fakeGameRepo) List(ctx context.Context, tx *gorm.DB, filter repos.GameListFilter) ([]*types.Game, error) {
	f.lastFilter = filter
	return f.listGames, nil
}

func (f *fakeGameRepo) Update(ctx context.Context, tx *gorm.DB, game *types.Game) (*types.Game, error) {
	return game, nil
}

func (f *fakeGameRepo) Delete(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) error {
	return nil
}

func (f *fakeGameRepo) IncrementPlays(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) error {
	return nil
}

func (f *fakeGameRepo) AdjustLikes(ctx context.Context, tx *gorm.DB, gameID uuid.UUID, delta int) error {
	return nil
}

func TestTrendingFallsBackToDatabaseWithoutRedis(t *testing.T) {
	repo := &fakeGameRepo{
		listGames: []*types.Game{
			{Title: "quiet", Plays: 2, IsPublic: true},
			{Title: "hit", Plays: 40, IsPublic: true},
			{Title: "steady", Plays: 15, IsPublic: true},
		},
	}
	ts := &trendingService{log: testLogger(t), rdb: nil, gameRepo: repo}

	games, err := ts.TopGames(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	if games[0].Title != "hit" || games[1].Title != "steady" {
		t.Errorf("order = [%s %s], want plays-descending", games[0].Title, games[1].Title)
	}
	if repo.lastFilter.IsPublic == nil || !*repo.lastFilter.IsPublic {
		t.Error("fallback query did not restrict to public games")
	}

	// RecordPlay without redis is a no-op, never a panic.
	ts.RecordPlay(context.Background(), uuid.New())
}

func TestTrendingDefaultsLimit(t *testing.T) {
	repo := &fakeGameRepo{}
	ts := &trendingService{log: testLogger(t), gameRepo: repo}

	if _, err := ts.TopGames(context.Background(), 0); err != nil {
		t.Fatalf("TopGames: %v", err)
	}
	if repo.lastFilter.Limit != 30 {
		t.Errorf("query limit = %d, want 30 (three times the default)", repo.lastFilter.Limit)
	}
}
