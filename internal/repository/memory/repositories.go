package memory

import (
	"context"
	"sort"

	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/repository"
)

type accountRepo struct{ s *session }

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	return r.s.do(ctx, "accounts.Create", func(d *dataset) error {
		for _, existing := range d.accounts {
			if existing.Email == account.Email {
				return repository.ErrDuplicate
			}
		}
		account.ID = newID()
		account.CreatedAt = r.s.store.now()
		account.UpdatedAt = account.CreatedAt
		d.accounts[account.ID] = *account
		return nil
	})
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var out domain.Account
	err := r.s.do(ctx, "accounts.GetByID", func(d *dataset) error {
		a, ok := d.accounts[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var out domain.Account
	err := r.s.do(ctx, "accounts.GetByEmail", func(d *dataset) error {
		for _, a := range d.accounts {
			if a.Email == email {
				out = a
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *accountRepo) SetActive(ctx context.Context, id string, active bool) (*domain.Account, error) {
	var out domain.Account
	err := r.s.do(ctx, "accounts.SetActive", func(d *dataset) error {
		a, ok := d.accounts[id]
		if !ok {
			return repository.ErrNotFound
		}
		a.IsActive = active
		a.UpdatedAt = r.s.store.now()
		d.accounts[id] = a
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *accountRepo) SetPasswordHash(ctx context.Context, id, hash string) error {
	return r.s.do(ctx, "accounts.SetPasswordHash", func(d *dataset) error {
		a, ok := d.accounts[id]
		if !ok {
			return repository.ErrNotFound
		}
		a.PasswordHash = hash
		a.UpdatedAt = r.s.store.now()
		d.accounts[id] = a
		return nil
	})
}

type clientRepo struct{ s *session }

func (r *clientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var out domain.Client
	err := r.s.do(ctx, "clients.GetByID", func(d *dataset) error {
		c, ok := d.clients[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *clientRepo) List(ctx context.Context) ([]domain.ClientOverview, error) {
	result := []domain.ClientOverview{}
	err := r.s.do(ctx, "clients.List", func(d *dataset) error {
		clients := make([]domain.Client, 0, len(d.clients))
		for _, c := range d.clients {
			clients = append(clients, c)
		}
		sort.Slice(clients, func(i, j int) bool { return clients[i].CreatedAt.After(clients[j].CreatedAt) })

		for _, c := range clients {
			overview := domain.ClientOverview{
				ID:     c.ID,
				UserID: c.UserID,
				User:   d.accounts[c.UserID].Summary(),
			}
			for _, addr := range d.addresses {
				if addr.ClientID == c.ID {
					overview.Addresses = append(overview.Addresses, addr)
				}
			}
			var bookings []domain.Booking
			for _, b := range d.bookings {
				if b.ClientID == c.ID {
					bookings = append(bookings, b)
				}
			}
			sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })
			overview.BookingCount = len(bookings)
			for i, b := range bookings {
				if i == 5 {
					break
				}
				overview.RecentBookings = append(overview.RecentBookings, domain.BookingSummary{
					ID:        b.ID,
					Status:    b.Status,
					CreatedAt: b.CreatedAt,
				})
			}
			result = append(result, overview)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type providerRepo struct{ s *session }

func (r *providerRepo) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	var out domain.Provider
	err := r.s.do(ctx, "providers.GetByID", func(d *dataset) error {
		p, ok := d.loadProvider(id, nil)
		if !ok {
			return repository.ErrNotFound
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *providerRepo) SetVerified(ctx context.Context, id string, verified bool) (*domain.ProviderProfile, error) {
	var out domain.ProviderProfile
	err := r.s.do(ctx, "providers.SetVerified", func(d *dataset) error {
		p, ok := d.providers[id]
		if !ok {
			return repository.ErrNotFound
		}
		p.IsProviderVerified = verified
		p.UpdatedAt = r.s.store.now()
		d.providers[id] = p
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *providerRepo) List(ctx context.Context, filter repository.ProviderFilter) ([]domain.ProviderRecord, error) {
	result := []domain.ProviderRecord{}
	err := r.s.do(ctx, "providers.List", func(d *dataset) error {
		profiles := make([]domain.ProviderProfile, 0, len(d.providers))
		for _, p := range d.providers {
			profiles = append(profiles, p)
		}
		sort.Slice(profiles, func(i, j int) bool { return profiles[i].CreatedAt.After(profiles[j].CreatedAt) })

		for _, profile := range profiles {
			if filter.Verified != nil && profile.IsProviderVerified != *filter.Verified {
				continue
			}
			if filter.Active != nil && d.accounts[profile.UserID].IsActive != *filter.Active {
				continue
			}
			p, _ := d.loadProvider(profile.ID, filter.DocumentType)
			result = append(result, d.record(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *providerRepo) GetDetails(ctx context.Context, id string) (*domain.ProviderRecord, error) {
	var out domain.ProviderRecord
	err := r.s.do(ctx, "providers.GetDetails", func(d *dataset) error {
		p, ok := d.loadProvider(id, nil)
		if !ok {
			return repository.ErrNotFound
		}
		out = d.record(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *dataset) loadProvider(id string, docType *domain.DocumentType) (domain.Provider, bool) {
	profile, ok := d.providers[id]
	if !ok {
		return domain.Provider{}, false
	}
	p := domain.Provider{Profile: profile, Account: d.accounts[profile.UserID]}
	for _, doc := range d.documents {
		if doc.ProviderID != id {
			continue
		}
		if docType != nil && doc.Type != *docType {
			continue
		}
		p.Documents = append(p.Documents, doc)
	}
	sort.Slice(p.Documents, func(i, j int) bool { return p.Documents[i].CreatedAt.Before(p.Documents[j].CreatedAt) })
	return p, true
}

func (d *dataset) record(p domain.Provider) domain.ProviderRecord {
	rec := p.Record()
	for _, row := range d.services {
		if row.providerID == p.Profile.ID {
			rec.Services = append(rec.Services, row.offering)
		}
	}
	for _, row := range d.skills {
		if row.providerID == p.Profile.ID {
			rec.Skills = append(rec.Skills, row.skill)
		}
	}
	return rec
}

type documentRepo struct{ s *session }

func (r *documentRepo) ListByProvider(ctx context.Context, providerID string) ([]domain.Document, error) {
	var out []domain.Document
	err := r.s.do(ctx, "documents.ListByProvider", func(d *dataset) error {
		for _, doc := range d.documents {
			if doc.ProviderID == providerID {
				out = append(out, doc)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r *documentRepo) MarkVerified(ctx context.Context, providerID, documentID string) error {
	return r.s.do(ctx, "documents.MarkVerified", func(d *dataset) error {
		doc, ok := d.documents[documentID]
		if !ok || doc.ProviderID != providerID {
			return repository.ErrNotFound
		}
		doc.IsVerified = true
		d.documents[documentID] = doc
		return nil
	})
}

func (r *documentRepo) MarkVerifiedByType(ctx context.Context, providerID string, docType domain.DocumentType) (int64, error) {
	var n int64
	err := r.s.do(ctx, "documents.MarkVerifiedByType", func(d *dataset) error {
		for id, doc := range d.documents {
			if doc.ProviderID == providerID && doc.Type == docType {
				doc.IsVerified = true
				d.documents[id] = doc
				n++
			}
		}
		return nil
	})
	return n, err
}

type notificationRepo struct{ s *session }

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return r.s.do(ctx, "notifications.Create", func(d *dataset) error {
		n.ID = newID()
		n.CreatedAt = r.s.store.now()
		d.notifications = append(d.notifications, *n)
		return nil
	})
}

func (r *notificationRepo) ListByReceiver(ctx context.Context, receiverID string) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.s.do(ctx, "notifications.ListByReceiver", func(d *dataset) error {
		for _, n := range d.notifications {
			if n.ReceiverID == receiverID {
				out = append(out, n)
			}
		}
		return nil
	})
	return out, err
}

type categoryRepo struct{ s *session }

func (r *categoryRepo) Create(ctx context.Context, category *domain.Category) error {
	return r.s.do(ctx, "categories.Create", func(d *dataset) error {
		for _, existing := range d.categories {
			if existing.Name == category.Name {
				return repository.ErrDuplicate
			}
		}
		category.ID = newID()
		category.CreatedAt = r.s.store.now()
		category.UpdatedAt = category.CreatedAt
		d.categories[category.ID] = *category
		return nil
	})
}

func (r *categoryRepo) Update(ctx context.Context, category *domain.Category) error {
	return r.s.do(ctx, "categories.Update", func(d *dataset) error {
		if _, ok := d.categories[category.ID]; !ok {
			return repository.ErrNotFound
		}
		for _, existing := range d.categories {
			if existing.ID != category.ID && existing.Name == category.Name {
				return repository.ErrDuplicate
			}
		}
		category.UpdatedAt = r.s.store.now()
		d.categories[category.ID] = *category
		return nil
	})
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	var out domain.Category
	err := r.s.do(ctx, "categories.GetByID", func(d *dataset) error {
		c, ok := d.categories[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var out domain.Category
	err := r.s.do(ctx, "categories.GetByName", func(d *dataset) error {
		for _, c := range d.categories {
			if c.Name == name {
				out = c
				return nil
			}
		}
		return repository.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.s.do(ctx, "categories.List", func(d *dataset) error {
		for _, c := range d.categories {
			out = append(out, c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

type bookingRepo struct{ s *session }

func (r *bookingRepo) Recent(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 10
	}
	out := []domain.Booking{}
	err := r.s.do(ctx, "bookings.Recent", func(d *dataset) error {
		out = append(out, d.bookings...)
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		if len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (r *bookingRepo) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{BookingsByStatus: map[domain.BookingStatus]int64{}}
	err := r.s.do(ctx, "bookings.DashboardStats", func(d *dataset) error {
		stats.TotalUsers = int64(len(d.accounts))
		stats.TotalClients = int64(len(d.clients))
		stats.TotalProviders = int64(len(d.providers))
		stats.TotalCategories = int64(len(d.categories))
		stats.TotalBookings = int64(len(d.bookings))
		for _, p := range d.providers {
			switch domain.DeriveProviderStatus(p.IsProviderVerified, d.accounts[p.UserID].IsActive) {
			case domain.ProviderStatusVerified:
				stats.VerifiedProviders++
			case domain.ProviderStatusPending:
				stats.PendingProviders++
			default:
				stats.RejectedProviders++
			}
		}
		for _, b := range d.bookings {
			stats.BookingsByStatus[b.Status]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
