package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/servicelink/admin-service/internal/domain"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

const (
	uniqueViolation = "23505"
	// invalidTextRepresentation is raised when an id is not a valid UUID.
	invalidTextRepresentation = "22P02"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx so every repository can
// run either standalone or inside a unit of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Account, error)
	SetPasswordHash(ctx context.Context, id, hash string) error
}

// ClientRepository reads client profiles.
type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]domain.ClientOverview, error)
}

// ProviderFilter narrows provider listings.
type ProviderFilter struct {
	Verified     *bool
	Active       *bool
	DocumentType *domain.DocumentType
}

// ProviderRepository handles provider profiles.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	SetVerified(ctx context.Context, id string, verified bool) (*domain.ProviderProfile, error)
	List(ctx context.Context, filter ProviderFilter) ([]domain.ProviderRecord, error)
	GetDetails(ctx context.Context, id string) (*domain.ProviderRecord, error)
}

// DocumentRepository handles provider documents.
type DocumentRepository interface {
	ListByProvider(ctx context.Context, providerID string) ([]domain.Document, error)
	MarkVerified(ctx context.Context, providerID, documentID string) error
	MarkVerifiedByType(ctx context.Context, providerID string, docType domain.DocumentType) (int64, error)
}

// NotificationRepository is the durable notification sink.
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListByReceiver(ctx context.Context, receiverID string) ([]domain.Notification, error)
}

// CategoryRepository handles service categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// BookingRepository serves read-only booking aggregates.
type BookingRepository interface {
	Recent(ctx context.Context, limit int) ([]domain.Booking, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// Stores bundles every repository bound to the same connection or transaction.
type Stores struct {
	Accounts      AccountRepository
	Clients       ClientRepository
	Providers     ProviderRepository
	Documents     DocumentRepository
	Notifications NotificationRepository
	Categories    CategoryRepository
	Bookings      BookingRepository
}

// TxManager runs fn inside one unit of work. Writes made through the given
// stores commit together when fn returns nil and are discarded otherwise.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(stores Stores) error) error
}

// NewStores binds Postgres-backed repositories to db.
func NewStores(db DBTX) Stores {
	return Stores{
		Accounts:      NewAccountRepository(db),
		Clients:       NewClientRepository(db),
		Providers:     NewProviderRepository(db),
		Documents:     NewDocumentRepository(db),
		Notifications: NewNotificationRepository(db),
		Categories:    NewCategoryRepository(db),
		Bookings:      NewBookingRepository(db),
	}
}

type pgTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager returns a TxManager backed by pgx transactions.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgTxManager{pool: pool}
}

func (m *pgTxManager) RunInTx(ctx context.Context, fn func(stores Stores) error) error {
	return pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
		return fn(NewStores(tx))
	})
}

// translate maps driver errors onto repository sentinels. A malformed id can
// never address a row, so it reads as ErrNotFound like an absent one.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
		case invalidTextRepresentation:
			return ErrNotFound
		}
	}
	return err
}
