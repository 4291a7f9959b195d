package repository

import (
	"context"
	"database/sql"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/skinory/skinory-api/internal/models"
	skinredis "github.com/skinory/skinory-api/internal/redis"
)

const (
	routineViewKeyPrefix   = "routine:view:"
	recommendedKeyPrefix   = "products:recommended:"
	recommendedTTL         = 10 * time.Minute
	deletionCountKeyPrefix = "routine:deletions:"
)

// routineListEntry wraps a period's listing for JSON caching.
type routineListEntry struct {
	Routines []models.RoutineView `json:"routines"`
}

// productListEntry wraps a recommendation result for JSON caching.
type productListEntry struct {
	Products []models.Product `json:"products"`
}

// RoutineReadRepository handles all read operations for routines and
// recommendations. It treats Redis as the primary read store and falls back
// to PostgreSQL transparently, warming the cache on every cold read.
type RoutineReadRepository struct {
	routines     *RoutineRepository
	products     *ProductRepository
	redis        *goredis.Client
	listCache    *skinredis.ViewCache[routineListEntry]
	productCache *skinredis.ViewCache[productListEntry]
}

func NewRoutineReadRepository(db *sql.DB, redisClient *goredis.Client) *RoutineReadRepository {
	return &RoutineReadRepository{
		routines:     NewRoutineRepository(db),
		products:     NewProductRepository(db),
		redis:        redisClient,
		listCache:    skinredis.NewViewCache[routineListEntry](redisClient, 0),
		productCache: skinredis.NewViewCache[productListEntry](redisClient, recommendedTTL),
	}
}

func routineViewKey(userID string, period models.Period) string {
	return routineViewKeyPrefix + userID + ":" + string(period)
}

// ListRoutines returns a user's period listing, trying Redis first then
// PostgreSQL.
func (r *RoutineReadRepository) ListRoutines(ctx context.Context, userID string, period models.Period) ([]models.RoutineView, error) {
	key := routineViewKey(userID, period)
	if entry, ok := r.listCache.Get(ctx, key); ok {
		return entry.Routines, nil
	}

	views, err := r.routines.ListViews(userID, period)
	if err != nil {
		return nil, err
	}

	r.listCache.Set(ctx, key, &routineListEntry{Routines: views})
	return views, nil
}

// RecommendedProducts returns catalog products matching a skin type and
// category, cached with a TTL since the catalog changes rarely.
func (r *RoutineReadRepository) RecommendedProducts(ctx context.Context, skinType, category string) ([]models.Product, error) {
	key := recommendedKeyPrefix + skinType + ":" + category
	if entry, ok := r.productCache.Get(ctx, key); ok {
		return entry.Products, nil
	}

	products, err := r.products.FindByCriteria(skinType, category)
	if err != nil {
		return nil, err
	}

	r.productCache.Set(ctx, key, &productListEntry{Products: products})
	return products, nil
}

// InvalidateRoutineViews drops the cached listing for one period.
// Called by the command service after every routine mutation.
func (r *RoutineReadRepository) InvalidateRoutineViews(ctx context.Context, userID string, period models.Period) {
	r.listCache.Delete(ctx, routineViewKey(userID, period))
}

// InvalidateAllRoutineViews drops both period listings. Used by the
// period-agnostic applied-status update.
func (r *RoutineReadRepository) InvalidateAllRoutineViews(ctx context.Context, userID string) {
	r.listCache.Delete(ctx, routineViewKey(userID, models.PeriodDay))
	r.listCache.Delete(ctx, routineViewKey(userID, models.PeriodNight))
}

// IncrDeletionCount bumps the per-user bulk-deletion counter kept by the
// audit consumer. At-least-once delivery can overcount; acceptable for a
// counter.
func (r *RoutineReadRepository) IncrDeletionCount(ctx context.Context, userID string) {
	r.redis.Incr(ctx, deletionCountKeyPrefix+userID)
}
