// Package memory provides an in-process implementation of the repository
// interfaces. Transactions work on a copy of the dataset that replaces the
// live one only when the callback succeeds.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/repository"
)

type serviceRow struct {
	providerID string
	offering   domain.ServiceOffering
	createdAt  time.Time
}

type skillRow struct {
	providerID string
	skill      domain.Skill
}

type dataset struct {
	accounts      map[string]domain.Account
	clients       map[string]domain.Client
	providers     map[string]domain.ProviderProfile
	documents     map[string]domain.Document
	categories    map[string]domain.Category
	notifications []domain.Notification
	addresses     []domain.Address
	services      []serviceRow
	skills        []skillRow
	bookings      []domain.Booking
}

func newDataset() *dataset {
	return &dataset{
		accounts:   make(map[string]domain.Account),
		clients:    make(map[string]domain.Client),
		providers:  make(map[string]domain.ProviderProfile),
		documents:  make(map[string]domain.Document),
		categories: make(map[string]domain.Category),
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.clients {
		c.clients[k] = v
	}
	for k, v := range d.providers {
		c.providers[k] = v
	}
	for k, v := range d.documents {
		c.documents[k] = v
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	c.notifications = append([]domain.Notification(nil), d.notifications...)
	c.addresses = append([]domain.Address(nil), d.addresses...)
	c.services = append([]serviceRow(nil), d.services...)
	c.skills = append([]skillRow(nil), d.skills...)
	c.bookings = append([]domain.Booking(nil), d.bookings...)
	return c
}

// Store is a concurrency-safe in-memory Account Store.
type Store struct {
	mu     sync.Mutex
	data   *dataset
	faults map[string]error
	clock  time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		data:   newDataset(),
		faults: make(map[string]error),
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Stores returns auto-commit repositories over the live dataset.
func (s *Store) Stores() repository.Stores {
	return newStores(&session{store: s})
}

// RunInTx implements repository.TxManager. The store lock is held for the
// whole callback, so transactions are serialized.
func (s *Store) RunInTx(ctx context.Context, fn func(stores repository.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(newStores(&session{store: s, tx: work})); err != nil {
		return err
	}
	s.data = work
	return nil
}

// InjectFault makes every call to op fail with err until ClearFaults.
// op is "<repository>.<Method>", for example "documents.MarkVerifiedByType".
func (s *Store) InjectFault(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// ClearFaults removes all injected faults.
func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]error)
}

// now must be called with mu held. Each call advances the clock so records
// created later always sort later.
func (s *Store) now() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

type session struct {
	store *Store
	tx    *dataset
}

func (ss *session) do(ctx context.Context, op string, fn func(d *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ss.tx != nil {
		if err := ss.store.faults[op]; err != nil {
			return err
		}
		return fn(ss.tx)
	}
	ss.store.mu.Lock()
	defer ss.store.mu.Unlock()
	if err := ss.store.faults[op]; err != nil {
		return err
	}
	return fn(ss.store.data)
}

func newStores(ss *session) repository.Stores {
	return repository.Stores{
		Accounts:      &accountRepo{ss},
		Clients:       &clientRepo{ss},
		Providers:     &providerRepo{ss},
		Documents:     &documentRepo{ss},
		Notifications: &notificationRepo{ss},
		Categories:    &categoryRepo{ss},
		Bookings:      &bookingRepo{ss},
	}
}

func newID() string {
	return uuid.NewString()
}
