package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/servicelink/admin-service/internal/domain"
)

const providerSelect = `
        SELECT sp.id, sp.user_id, sp.business_name, sp.bio, sp.is_provider_verified, sp.created_at, sp.updated_at,
               u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone, u.profile_picture,
               u.role, u.is_active, u.is_verified, u.created_at, u.updated_at
        FROM service_providers sp
        JOIN users u ON u.id = sp.user_id`

type providerRepository struct {
	db DBTX
}

// NewProviderRepository instantiates the repository.
func NewProviderRepository(db DBTX) ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	var provider domain.Provider
	if err := scanProvider(r.db.QueryRow(ctx, providerSelect+` WHERE sp.id=$1`, id), &provider); err != nil {
		return nil, translate(err)
	}
	docs, err := listDocuments(ctx, r.db, []string{provider.Profile.ID}, nil)
	if err != nil {
		return nil, err
	}
	provider.Documents = docs[provider.Profile.ID]
	return &provider, nil
}

func (r *providerRepository) SetVerified(ctx context.Context, id string, verified bool) (*domain.ProviderProfile, error) {
	const query = `
        UPDATE service_providers SET is_provider_verified=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING id, user_id, business_name, bio, is_provider_verified, created_at, updated_at`

	var profile domain.ProviderProfile
	if err := r.db.QueryRow(ctx, query, verified, id).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.BusinessName,
		&profile.Bio,
		&profile.IsProviderVerified,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *providerRepository) List(ctx context.Context, filter ProviderFilter) ([]domain.ProviderRecord, error) {
	query := providerSelect
	args := []any{}
	clauses := []string{}

	if filter.Verified != nil {
		args = append(args, *filter.Verified)
		clauses = append(clauses, fmt.Sprintf("sp.is_provider_verified=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("u.is_active=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY sp.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var providers []domain.Provider
	for rows.Next() {
		var provider domain.Provider
		if err := scanProvider(rows, &provider); err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r.enrich(ctx, providers, filter.DocumentType)
}

func (r *providerRepository) GetDetails(ctx context.Context, id string) (*domain.ProviderRecord, error) {
	var provider domain.Provider
	if err := scanProvider(r.db.QueryRow(ctx, providerSelect+` WHERE sp.id=$1`, id), &provider); err != nil {
		return nil, translate(err)
	}
	records, err := r.enrich(ctx, []domain.Provider{provider}, nil)
	if err != nil {
		return nil, err
	}
	return &records[0], nil
}

// enrich attaches documents, services and skills with one query per relation.
func (r *providerRepository) enrich(ctx context.Context, providers []domain.Provider, docType *domain.DocumentType) ([]domain.ProviderRecord, error) {
	if len(providers) == 0 {
		return []domain.ProviderRecord{}, nil
	}
	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.Profile.ID)
	}

	docs, err := listDocuments(ctx, r.db, ids, docType)
	if err != nil {
		return nil, err
	}
	services, err := r.listServices(ctx, ids)
	if err != nil {
		return nil, err
	}
	skills, err := r.listSkills(ctx, ids)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ProviderRecord, 0, len(providers))
	for _, p := range providers {
		p.Documents = docs[p.Profile.ID]
		rec := p.Record()
		rec.Services = services[p.Profile.ID]
		rec.Skills = skills[p.Profile.ID]
		records = append(records, rec)
	}
	return records, nil
}

func (r *providerRepository) listServices(ctx context.Context, providerIDs []string) (map[string][]domain.ServiceOffering, error) {
	const query = `
        SELECT provider_id, id, title, is_active
        FROM services WHERE provider_id = ANY($1) ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, providerIDs)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := make(map[string][]domain.ServiceOffering)
	for rows.Next() {
		var providerID string
		var svc domain.ServiceOffering
		if err := rows.Scan(&providerID, &svc.ID, &svc.Title, &svc.IsActive); err != nil {
			return nil, err
		}
		result[providerID] = append(result[providerID], svc)
	}
	return result, rows.Err()
}

func (r *providerRepository) listSkills(ctx context.Context, providerIDs []string) (map[string][]domain.Skill, error) {
	const query = `SELECT provider_id, id, name FROM skills WHERE provider_id = ANY($1) ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query, providerIDs)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Skill)
	for rows.Next() {
		var providerID string
		var skill domain.Skill
		if err := rows.Scan(&providerID, &skill.ID, &skill.Name); err != nil {
			return nil, err
		}
		result[providerID] = append(result[providerID], skill)
	}
	return result, rows.Err()
}

func scanProvider(row rowScanner, provider *domain.Provider) error {
	return row.Scan(
		&provider.Profile.ID,
		&provider.Profile.UserID,
		&provider.Profile.BusinessName,
		&provider.Profile.Bio,
		&provider.Profile.IsProviderVerified,
		&provider.Profile.CreatedAt,
		&provider.Profile.UpdatedAt,
		&provider.Account.ID,
		&provider.Account.Email,
		&provider.Account.PasswordHash,
		&provider.Account.FirstName,
		&provider.Account.LastName,
		&provider.Account.Phone,
		&provider.Account.ProfilePicture,
		&provider.Account.Role,
		&provider.Account.IsActive,
		&provider.Account.IsVerified,
		&provider.Account.CreatedAt,
		&provider.Account.UpdatedAt,
	)
}
