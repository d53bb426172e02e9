package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/events"
	"github.com/servicelink/admin-service/internal/repository/memory"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

type sentEmail struct {
	address   string
	firstName string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (m *recordingMailer) SendProviderVerificationEmail(_ context.Context, address, firstName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{address: address, firstName: firstName})
	return m.err
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]*domain.DashboardStats
	deletes int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]*domain.DashboardStats{}}
}

func (c *mapCache) Get(_ context.Context, key string) (*domain.DashboardStats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key string, value *domain.DashboardStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *mapCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deletes++
}

// serviceSuite wires the services to the in-memory store and a synchronous
// dispatcher, so side effects are observable as soon as an operation returns.
type serviceSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memory.Store
	mailer *recordingMailer
	cache  *mapCache

	lifecycle   *LifecycleService
	credentials *CredentialService
	categories  *CategoryService
	queries     *AdminQueryService
	auth        *AuthService

	admin domain.Caller
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(serviceSuite))
}

func (s *serviceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.mailer = &recordingMailer{}
	s.cache = newMapCache()

	stores := s.store.Stores()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	NewNotificationService(NotificationDependencies{
		Dispatcher:    dispatcher,
		Notifications: stores.Notifications,
		Mailer:        s.mailer,
		Cache:         s.cache,
	}).RegisterHandlers()

	s.lifecycle = NewLifecycleService(LifecycleDependencies{TxManager: s.store, Dispatcher: dispatcher})
	s.credentials = NewCredentialService(CredentialDependencies{Accounts: stores.Accounts, Dispatcher: dispatcher, BcryptCost: 4})
	s.categories = NewCategoryService(stores.Categories)
	s.queries = NewAdminQueryService(stores, s.cache, nil)

	hash, err := auth.NewPasswordHasher(4).Hash("admin-pass")
	s.Require().NoError(err)
	admin := s.store.SeedAccount(domain.Account{
		Email:        "root@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
	s.admin = domain.Caller{ID: admin.ID, Role: domain.RoleAdmin}
}

// seedPendingProvider creates an active, unverified provider.
func (s *serviceSuite) seedPendingProvider(email string) (domain.Account, domain.ProviderProfile) {
	acc := s.store.SeedAccount(domain.Account{
		Email:     email,
		FirstName: "Pat",
		Role:      domain.RoleProvider,
		IsActive:  true,
	})
	return acc, s.store.SeedProvider(acc.ID, false)
}

func (s *serviceSuite) notifications(receiverID string) []domain.Notification {
	list, err := s.store.Stores().Notifications.ListByReceiver(s.ctx, receiverID)
	s.Require().NoError(err)
	return list
}

func (s *serviceSuite) provider(id string) *domain.Provider {
	p, err := s.store.Stores().Providers.GetByID(s.ctx, id)
	s.Require().NoError(err)
	return p
}

func (s *serviceSuite) documentState(providerID string) map[string]bool {
	docs, err := s.store.Stores().Documents.ListByProvider(s.ctx, providerID)
	s.Require().NoError(err)
	out := map[string]bool{}
	for _, d := range docs {
		out[d.ID] = d.IsVerified
	}
	return out
}

func (s *serviceSuite) requireCode(err error, code string) {
	s.Require().Error(err)
	s.Require().True(apperrors.HasCode(err, code), "want %s, got %v", code, err)
}

func errBoom() error { return errors.New("store unavailable") }
