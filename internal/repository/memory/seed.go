package memory

import (
	"github.com/servicelink/admin-service/internal/domain"
)

// SeedAccount stores an account as registration flows would, assigning an
// id and timestamps when missing.
func (s *Store) SeedAccount(a domain.Account) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	a.UpdatedAt = a.CreatedAt
	s.data.accounts[a.ID] = a
	return a
}

// SeedClient attaches a client profile to an existing account.
func (s *Store) SeedClient(userID string) domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Client{ID: newID(), UserID: userID, CreatedAt: s.now()}
	s.data.clients[c.ID] = c
	return c
}

// SeedProvider attaches a provider profile to an existing account.
func (s *Store) SeedProvider(userID string, verified bool) domain.ProviderProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	p := domain.ProviderProfile{
		ID:                 newID(),
		UserID:             userID,
		IsProviderVerified: verified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.data.providers[p.ID] = p
	return p
}

// SeedDocument stores a provider document.
func (s *Store) SeedDocument(doc domain.Document) domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.ID == "" {
		doc.ID = newID()
	}
	doc.CreatedAt = s.now()
	s.data.documents[doc.ID] = doc
	return doc
}

// SeedService stores a provider service offering.
func (s *Store) SeedService(providerID string, offering domain.ServiceOffering) domain.ServiceOffering {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offering.ID == "" {
		offering.ID = newID()
	}
	s.data.services = append(s.data.services, serviceRow{providerID: providerID, offering: offering, createdAt: s.now()})
	return offering
}

// SeedSkill stores a provider skill.
func (s *Store) SeedSkill(providerID, name string) domain.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	skill := domain.Skill{ID: newID(), Name: name}
	s.data.skills = append(s.data.skills, skillRow{providerID: providerID, skill: skill})
	return skill
}

// SeedAddress stores a client address.
func (s *Store) SeedAddress(addr domain.Address) domain.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	if addr.ID == "" {
		addr.ID = newID()
	}
	s.data.addresses = append(s.data.addresses, addr)
	return addr
}

// SeedBooking stores a service booking.
func (s *Store) SeedBooking(b domain.Booking) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = newID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now()
	}
	s.data.bookings = append(s.data.bookings, b)
	return b
}
