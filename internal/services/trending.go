package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/repos"
	"github.com/fagame/backend/internal/types"
	"github.com/fagame/backend/internal/utils"
)

const trendingKey = "trending:games"

// TrendingService keeps a redis sorted set of play counts and serves the
// trending list from it. It degrades to a plays-ordered database query when
// redis is not configured, so a missing REDIS_ADDR never takes the feature
// down.
type TrendingService interface {
	RecordPlay(ctx context.Context, gameID uuid.UUID)
	TopGames(ctx context.Context, limit int) ([]*types.Game, error)
}

type trendingService struct {
	log      *logger.Logger
	rdb      *redis.Client
	gameRepo repos.GameRepo
}

func NewTrendingService(log *logger.Logger, gameRepo repos.GameRepo) TrendingService {
	serviceLog := log.With("service", "TrendingService")

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	var rdb *redis.Client
	if addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:        addr,
			DialTimeout: 5 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			serviceLog.Warn("redis unreachable, trending falls back to the database", "error", err)
			rdb = nil
		}
	} else {
		serviceLog.Info("REDIS_ADDR not set, trending served from the database")
	}

	return &trendingService{
		log:      serviceLog,
		rdb:      rdb,
		gameRepo: gameRepo,
	}
}

func (ts *trendingService) RecordPlay(ctx context.Context, gameID uuid.UUID) {
	if ts.rdb == nil {
		return
	}
	if err := ts.rdb.ZIncrBy(ctx, trendingKey, 1, gameID.String()).Err(); err != nil {
		ts.log.Warn("failed to bump trending score", "game_id", gameID, "error", err)
	}
}

func (ts *trendingService) TopGames(ctx context.Context, limit int) ([]*types.Game, error) {
	if limit <= 0 {
		limit = 10
	}

	if ts.rdb == nil {
		return ts.topFromDB(ctx, limit)
	}

	members, err := ts.rdb.ZRevRange(ctx, trendingKey, 0, int64(limit-1)).Result()
	if err != nil {
		ts.log.Warn("trending read failed, falling back to the database", "error", err)
		return ts.topFromDB(ctx, limit)
	}
	if len(members) == 0 {
		return ts.topFromDB(ctx, limit)
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	// Hydrate in parallel chunks; redis gives us ranking, postgres the rows.
	const chunkSize = 25
	chunks := make([][]*types.Game, (len(ids)+chunkSize-1)/chunkSize)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < len(ids); i += chunkSize {
		i := i
		end := i + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		g.Go(func() error {
			games, err := ts.gameRepo.GetByIDs(gctx, nil, ids[i:end])
			if err != nil {
				return fmt.Errorf("hydrate trending games: %w", err)
			}
			chunks[i/chunkSize] = games
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*types.Game)
	for _, chunk := range chunks {
		for _, game := range chunk {
			byID[game.ID] = game
		}
	}

	// Preserve redis rank order; drop deleted or private games.
	ordered := make([]*types.Game, 0, len(ids))
	for _, id := range ids {
		if game, ok := byID[id]; ok && game.IsPublic {
			ordered = append(ordered, game)
		}
	}
	return ordered, nil
}

func (ts *trendingService) topFromDB(ctx context.Context, limit int) ([]*types.Game, error) {
	pub := true
	games, err := ts.gameRepo.List(ctx, nil, repos.GameListFilter{IsPublic: &pub, Limit: limit * 3})
	if err != nil {
		return nil, err
	}
	// List orders by creation date; rank by play count instead.
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Plays > games[j].Plays
	})
	if len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}
