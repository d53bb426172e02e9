package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/repository"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

// DashboardStatsKey is the cache key of the dashboard aggregates.
const DashboardStatsKey = "dashboard:stats"

const defaultRecentBookings = 10

// StatsCache caches dashboard aggregates. persistence.ViewCache satisfies it.
type StatsCache interface {
	Get(ctx context.Context, key string) (*domain.DashboardStats, bool)
	Set(ctx context.Context, key string, value *domain.DashboardStats)
	Delete(ctx context.Context, key string)
}

// AdminQueryService serves the read-only admin listings.
type AdminQueryService struct {
	stores repository.Stores
	cache  StatsCache
	logger *zap.Logger
}

// NewAdminQueryService constructs the service. cache may be nil.
func NewAdminQueryService(stores repository.Stores, cache StatsCache, logger *zap.Logger) *AdminQueryService {
	return &AdminQueryService{stores: stores, cache: cache, logger: orNop(logger)}
}

// ListClients returns every client with addresses and recent bookings.
func (s *AdminQueryService) ListClients(ctx context.Context) ([]domain.ClientOverview, error) {
	clients, err := s.stores.Clients.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return clients, nil
}

// ListProvidersWithStatus returns all providers with their derived status.
func (s *AdminQueryService) ListProvidersWithStatus(ctx context.Context) ([]domain.ProviderRecord, error) {
	return s.listProviders(ctx, repository.ProviderFilter{})
}

// ListActiveProviders returns providers whose account is active.
func (s *AdminQueryService) ListActiveProviders(ctx context.Context) ([]domain.ProviderRecord, error) {
	active := true
	return s.listProviders(ctx, repository.ProviderFilter{Active: &active})
}

// ListUnverifiedProviders returns the verification queue: unverified, active
// providers with only their ID documents attached.
func (s *AdminQueryService) ListUnverifiedProviders(ctx context.Context) ([]domain.ProviderRecord, error) {
	verified, active := false, true
	docType := domain.DocumentTypeID
	return s.listProviders(ctx, repository.ProviderFilter{Verified: &verified, Active: &active, DocumentType: &docType})
}

// GetProviderDetails returns one provider with services, skills and documents.
func (s *AdminQueryService) GetProviderDetails(ctx context.Context, providerID string) (*domain.ProviderRecord, error) {
	record, err := s.stores.Providers.GetDetails(ctx, providerID)
	if err != nil {
		return nil, mapStoreError(err, "provider", map[string]any{"provider_id": providerID})
	}
	return record, nil
}

// DashboardStats returns aggregate counts, served from cache when possible.
func (s *AdminQueryService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.Get(ctx, DashboardStatsKey); ok {
			return stats, nil
		}
	}
	stats, err := s.stores.Bookings.DashboardStats(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, DashboardStatsKey, stats)
	}
	return stats, nil
}

// RecentBookings returns the newest bookings, ten by default.
func (s *AdminQueryService) RecentBookings(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = defaultRecentBookings
	}
	bookings, err := s.stores.Bookings.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return bookings, nil
}

func (s *AdminQueryService) listProviders(ctx context.Context, filter repository.ProviderFilter) ([]domain.ProviderRecord, error) {
	records, err := s.stores.Providers.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return records, nil
}
