package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared in-memory database keeps gorm's pooled connections on
	// the same data while isolating tests from each other.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.Game{},
		&types.GameLike{},
		&types.PlaySession{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func seedUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	user := &types.User{Email: uuid.NewString() + "@example.com", Password: "x", FirstName: "Pat"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestGameRepoCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepo(db, newTestLogger(t))
	owner := seedUser(t, db)
	ctx := context.Background()

	game := &types.Game{
		OwnerID:        owner.ID,
		Title:          "Star Catch",
		Template:       "catch",
		AgeGroup:       "4-6",
		TemplateParams: []byte(`{"objectEmoji":"⭐","catcherEmoji":"🧺","fallPattern":"straight","fallSpeed":"slow","spawnRate":"low"}`),
		IsPublic:       true,
	}
	created, err := repo.Create(ctx, nil, []*types.Game{game})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created[0].ID == uuid.Nil {
		t.Fatal("created game has no id")
	}

	got, err := repo.GetByID(ctx, nil, game.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Star Catch" || got.Template != "catch" {
		t.Errorf("GetByID = %+v", got)
	}

	got.Title = "Super Star Catch"
	if _, err := repo.Update(ctx, nil, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ = repo.GetByID(ctx, nil, game.ID)
	if got.Title != "Super Star Catch" {
		t.Errorf("title after update = %q", got.Title)
	}

	if err := repo.Delete(ctx, nil, game.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, nil, game.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrRecordNotFound", err)
	}
}

func TestGameRepoListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepo(db, newTestLogger(t))
	owner := seedUser(t, db)
	other := seedUser(t, db)
	ctx := context.Background()

	seed := []*types.Game{
		{OwnerID: owner.ID, Title: "m1", Template: "matching", AgeGroup: "4-6", IsPublic: true},
		{OwnerID: owner.ID, Title: "s1", Template: "sorting", AgeGroup: "7-9", IsPublic: true},
		{OwnerID: other.ID, Title: "m2", Template: "matching", AgeGroup: "4-6", IsPublic: false},
	}
	if _, err := repo.Create(ctx, nil, seed); err != nil {
		t.Fatalf("Create: %v", err)
	}

	pub := true
	tests := []struct {
		name   string
		filter GameListFilter
		want   int
	}{
		{"all", GameListFilter{}, 3},
		{"by template", GameListFilter{Template: "matching"}, 2},
		{"by age group", GameListFilter{AgeGroup: "7-9"}, 1},
		{"by owner", GameListFilter{OwnerID: other.ID}, 1},
		{"public only", GameListFilter{IsPublic: &pub}, 2},
		{"public matching", GameListFilter{Template: "matching", IsPublic: &pub}, 1},
		{"limited", GameListFilter{Limit: 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, nil, tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("List returned %d games, want %d", len(got), tt.want)
			}
		})
	}
}

func TestGameRepoCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewGameRepo(db, newTestLogger(t))
	owner := seedUser(t, db)
	ctx := context.Background()

	game := &types.Game{OwnerID: owner.ID, Title: "g", Template: "catch"}
	if _, err := repo.Create(ctx, nil, []*types.Game{game}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementPlays(ctx, nil, game.ID); err != nil {
			t.Fatalf("IncrementPlays: %v", err)
		}
	}
	if err := repo.AdjustLikes(ctx, nil, game.ID, 1); err != nil {
		t.Fatalf("AdjustLikes: %v", err)
	}
	if err := repo.AdjustLikes(ctx, nil, game.ID, -1); err != nil {
		t.Fatalf("AdjustLikes: %v", err)
	}

	got, err := repo.GetByID(ctx, nil, game.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Plays != 3 {
		t.Errorf("plays = %d, want 3", got.Plays)
	}
	if got.Likes != 0 {
		t.Errorf("likes = %d, want 0", got.Likes)
	}
}

func TestGameLikeRepoUniqueness(t *testing.T) {
	db := newTestDB(t)
	gameRepo := NewGameRepo(db, newTestLogger(t))
	likeRepo := NewGameLikeRepo(db, newTestLogger(t))
	owner := seedUser(t, db)
	ctx := context.Background()

	game := &types.Game{OwnerID: owner.ID, Title: "g", Template: "matching"}
	if _, err := gameRepo.Create(ctx, nil, []*types.Game{game}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := likeRepo.Create(ctx, nil, &types.GameLike{GameID: game.ID, UserID: owner.ID}); err != nil {
		t.Fatalf("Create like: %v", err)
	}
	if _, err := likeRepo.Create(ctx, nil, &types.GameLike{GameID: game.ID, UserID: owner.ID}); err == nil {
		t.Error("duplicate like did not error")
	}

	exists, err := likeRepo.Exists(ctx, nil, game.ID, owner.ID)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}
	if err := likeRepo.Delete(ctx, nil, game.ID, owner.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	exists, _ = likeRepo.Exists(ctx, nil, game.ID, owner.ID)
	if exists {
		t.Error("like still exists after delete")
	}
}
