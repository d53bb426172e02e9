package service

import (
	"github.com/servicelink/admin-service/internal/domain"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

func (s *serviceSuite) TestProviderListings() {
	_, pending := s.seedPendingProvider("pending@example.com")
	s.store.SeedDocument(domain.Document{ProviderID: pending.ID, Type: domain.DocumentTypeID})
	s.store.SeedDocument(domain.Document{ProviderID: pending.ID, Type: domain.DocumentTypeOther})
	s.store.SeedService(pending.ID, domain.ServiceOffering{Title: "Deep clean", IsActive: true})
	s.store.SeedSkill(pending.ID, "ironing")

	verifiedAcc := s.store.SeedAccount(domain.Account{Email: "v@example.com", Role: domain.RoleProvider, IsActive: true})
	verified := s.store.SeedProvider(verifiedAcc.ID, true)

	_, rejected := s.seedPendingProvider("rejected@example.com")
	_, err := s.lifecycle.RejectProviderVerification(s.ctx, s.admin, rejected.ID, "reason")
	s.Require().NoError(err)

	all, err := s.queries.ListProvidersWithStatus(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
	statuses := map[string]domain.ProviderStatus{}
	for _, p := range all {
		statuses[p.ID] = p.Status
	}
	s.Equal(domain.ProviderStatusPending, statuses[pending.ID])
	s.Equal(domain.ProviderStatusVerified, statuses[verified.ID])
	s.Equal(domain.ProviderStatusRejected, statuses[rejected.ID])

	active, err := s.queries.ListActiveProviders(s.ctx)
	s.Require().NoError(err)
	s.Len(active, 2)

	queue, err := s.queries.ListUnverifiedProviders(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(queue, 1)
	s.Equal(pending.ID, queue[0].ID)
	s.Require().Len(queue[0].Documents, 1)
	s.Equal(domain.DocumentTypeID, queue[0].Documents[0].Type)

	details, err := s.queries.GetProviderDetails(s.ctx, pending.ID)
	s.Require().NoError(err)
	s.Len(details.Documents, 2)
	s.Require().Len(details.Services, 1)
	s.Equal("Deep clean", details.Services[0].Title)
	s.Require().Len(details.Skills, 1)

	_, err = s.queries.GetProviderDetails(s.ctx, "missing")
	s.requireCode(err, apperrors.CodeNotFound)
}

func (s *serviceSuite) TestClientsAndBookings() {
	acc := s.store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, IsActive: true})
	client := s.store.SeedClient(acc.ID)
	s.store.SeedAddress(domain.Address{ClientID: client.ID, Street: "1 Main St", City: "Springfield"})
	for i := 0; i < 7; i++ {
		s.store.SeedBooking(domain.Booking{ClientID: client.ID, Status: domain.BookingStatusCompleted})
	}
	s.store.SeedBooking(domain.Booking{ClientID: client.ID, Status: domain.BookingStatusPending})

	clients, err := s.queries.ListClients(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(clients, 1)
	s.Equal("c@example.com", clients[0].User.Email)
	s.Len(clients[0].Addresses, 1)
	s.Equal(8, clients[0].BookingCount)
	s.Len(clients[0].RecentBookings, 5)
	s.Equal(domain.BookingStatusPending, clients[0].RecentBookings[0].Status)

	recent, err := s.queries.RecentBookings(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(recent, 8)
	recent, err = s.queries.RecentBookings(s.ctx, 3)
	s.Require().NoError(err)
	s.Len(recent, 3)
}

func (s *serviceSuite) TestDashboardStatsCached() {
	s.seedPendingProvider("p@example.com")

	stats, err := s.queries.DashboardStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), stats.TotalUsers)
	s.Equal(int64(1), stats.PendingProviders)

	s.store.SeedAccount(domain.Account{Email: "late@example.com"})
	cached, err := s.queries.DashboardStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), cached.TotalUsers)

	s.cache.Delete(s.ctx, DashboardStatsKey)
	fresh, err := s.queries.DashboardStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), fresh.TotalUsers)
}

func (s *serviceSuite) TestQueriesSurfaceStoreFailures() {
	s.store.InjectFault("providers.List", errBoom())
	_, err := s.queries.ListProvidersWithStatus(s.ctx)
	s.requireCode(err, apperrors.CodeInternal)
}
