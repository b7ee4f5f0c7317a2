package facility

import (
	"context"
	"time"

	"github.com/nekogravitycat/club-booking-backend/internal/cache"
	"go.uber.org/zap"
)

type Service interface {
	ListFacilities(ctx context.Context) ([]Facility, error)
	// ListBookable returns the flat resource list, served from the cache when possible.
	ListBookable(ctx context.Context, facilityID string) ([]BookableResource, error)
	// ListBookableFresh always rebuilds the list from the repository and refreshes the cache.
	ListBookableFresh(ctx context.Context, facilityID string) ([]BookableResource, error)
	// Invalidate drops every cached resource list.
	Invalidate(ctx context.Context) error
	GetBookable(ctx context.Context, id string) (*BookableResource, error)
}

type service struct {
	repo     Repository
	store    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService wires the facility service. A nil store disables caching of the flattened list.
func NewService(repo Repository, store cache.Store, cacheTTL time.Duration, logger *zap.Logger) Service {
	if store == nil {
		store = cache.Noop{}
	}
	return &service{repo: repo, store: store, cacheTTL: cacheTTL, logger: logger}
}

func bookableKey(facilityID string) string {
	if facilityID == "" {
		return "bookable:all"
	}
	return "bookable:" + facilityID
}

func (s *service) ListFacilities(ctx context.Context) ([]Facility, error) {
	return s.repo.ListFacilities(ctx)
}

func (s *service) ListBookable(ctx context.Context, facilityID string) ([]BookableResource, error) {
	key := bookableKey(facilityID)

	var cached []BookableResource
	hit, err := s.store.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("bookable resource cache unavailable", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return cached, nil
	}
	return s.ListBookableFresh(ctx, facilityID)
}

func (s *service) ListBookableFresh(ctx context.Context, facilityID string) ([]BookableResource, error) {
	groups, err := s.repo.ListGroups(ctx, facilityID)
	if err != nil {
		s.logger.Error("failed to load resource groups", zap.Error(err))
		return nil, err
	}
	resources, err := s.repo.ListResources(ctx, facilityID)
	if err != nil {
		s.logger.Error("failed to load resources", zap.Error(err))
		return nil, err
	}

	bookable := BuildBookableResources(groups, resources)
	if err := Validate(bookable); err != nil {
		s.logger.Error("resource configuration rejected", zap.Error(err))
		return nil, err
	}

	if s.cacheTTL > 0 {
		key := bookableKey(facilityID)
		if err := s.store.Set(ctx, key, bookable, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache bookable resources", zap.String("key", key), zap.Error(err))
		}
	}
	return bookable, nil
}

func (s *service) Invalidate(ctx context.Context) error {
	facilities, err := s.repo.ListFacilities(ctx)
	if err != nil {
		s.logger.Error("failed to list facilities", zap.Error(err))
		return err
	}

	keys := []string{bookableKey("")}
	for _, f := range facilities {
		keys = append(keys, bookableKey(f.ID))
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		s.logger.Error("failed to invalidate bookable resources", zap.Strings("keys", keys), zap.Error(err))
		return err
	}
	s.logger.Info("bookable resource cache invalidated", zap.Int("keys", len(keys)))
	return nil
}

func (s *service) GetBookable(ctx context.Context, id string) (*BookableResource, error) {
	all, err := s.ListBookable(ctx, "")
	if err != nil {
		return nil, err
	}
	res, ok := Index(all)[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}
