// Package stats aggregates the admin dashboard figures.
package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wayfari/wayfari/internal/bookings"
	"github.com/wayfari/wayfari/internal/catalog"
	"github.com/wayfari/wayfari/internal/users"
)

const (
	cacheKey = "stats:dashboard:v1"
	cacheTTL = 30 * time.Second
)

// RoleStats counts users holding each marketplace role.
type RoleStats struct {
	Guide   int64 `json:"guide"`
	Tourist int64 `json:"tourist"`
}

// Dashboard is the admin overview payload.
type Dashboard struct {
	Stats        RoleStats `json:"stats"`
	Stories      int64     `json:"stories"`
	Packages     int64     `json:"package"`
	TotalRevenue float64   `json:"totalRevenue"`
}

// Service computes the dashboard, with an optional short-lived Redis cache.
// Cache failures are logged and ignored; the store remains authoritative.
type Service struct {
	users    *users.Service
	bookings *bookings.Service
	catalog  *catalog.Service
	cache    *redis.Client
	logger   *slog.Logger
}

// NewService builds the stats service. cache may be nil.
func NewService(userSvc *users.Service, bookingSvc *bookings.Service, catalogSvc *catalog.Service, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{users: userSvc, bookings: bookingSvc, catalog: catalogSvc, cache: cache, logger: logger}
}

// Dashboard assembles the admin overview.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	counts, err := s.users.RoleCounts(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	stories, err := s.catalog.StoryCount(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	packages, err := s.catalog.PackageCount(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	revenue, err := s.bookings.Revenue(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		Stats: RoleStats{
			Guide:   counts[users.RoleGuide],
			Tourist: counts[users.RoleTourist],
		},
		Stories:      stories,
		Packages:     packages,
		TotalRevenue: revenue,
	}

	s.toCache(ctx, dashboard)
	return dashboard, nil
}

func (s *Service) fromCache(ctx context.Context) (Dashboard, bool) {
	if s.cache == nil {
		return Dashboard{}, false
	}
	raw, err := s.cache.Get(ctx, cacheKey).Result()
	if err != nil {
		if err != redis.Nil && s.logger != nil {
			s.logger.Warn("stats cache lookup failed", slog.Any("error", err))
		}
		return Dashboard{}, false
	}
	var dashboard Dashboard
	if err := json.Unmarshal([]byte(raw), &dashboard); err != nil {
		return Dashboard{}, false
	}
	return dashboard, true
}

func (s *Service) toCache(ctx context.Context, dashboard Dashboard) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(dashboard)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Warn("stats cache write failed", slog.Any("error", err))
	}
}
