package repository

import (
	"context"

	"github.com/servicelink/admin-service/internal/domain"
)

type documentRepository struct {
	db DBTX
}

// NewDocumentRepository builds repository.
func NewDocumentRepository(db DBTX) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Document, error) {
	docs, err := listDocuments(ctx, r.db, []string{providerID}, nil)
	if err != nil {
		return nil, err
	}
	return docs[providerID], nil
}

// MarkVerified flags one document. The provider id scopes the update so a
// document of another provider is reported as missing.
func (r *documentRepository) MarkVerified(ctx context.Context, providerID, documentID string) error {
	const query = `UPDATE documents SET is_verified=TRUE WHERE id=$1 AND provider_id=$2`
	cmd, err := r.db.Exec(ctx, query, documentID, providerID)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *documentRepository) MarkVerifiedByType(ctx context.Context, providerID string, docType domain.DocumentType) (int64, error) {
	const query = `UPDATE documents SET is_verified=TRUE WHERE provider_id=$1 AND type=$2`
	cmd, err := r.db.Exec(ctx, query, providerID, docType)
	if err != nil {
		return 0, translate(err)
	}
	return cmd.RowsAffected(), nil
}

func listDocuments(ctx context.Context, db DBTX, providerIDs []string, docType *domain.DocumentType) (map[string][]domain.Document, error) {
	query := `
        SELECT id, provider_id, title, type, url, is_verified, created_at
        FROM documents WHERE provider_id = ANY($1)`
	args := []any{providerIDs}
	if docType != nil {
		query += ` AND type=$2`
		args = append(args, *docType)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := make(map[string][]domain.Document)
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.ProviderID,
			&doc.Title,
			&doc.Type,
			&doc.URL,
			&doc.IsVerified,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		result[doc.ProviderID] = append(result[doc.ProviderID], doc)
	}
	return result, rows.Err()
}
