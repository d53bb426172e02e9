package repository

import (
	"context"

	"github.com/servicelink/admin-service/internal/domain"
)

type categoryRepository struct {
	db DBTX
}

// NewCategoryRepository returns repository implementation.
func NewCategoryRepository(db DBTX) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, description, image_url)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		category.Name,
		category.Description,
		category.ImageURL,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	return translate(err)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, description=$2, image_url=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		category.Name,
		category.Description,
		category.ImageURL,
		category.ID,
	).Scan(&category.UpdatedAt)
	return translate(err)
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
        SELECT id, name, description, image_url, created_at, updated_at
        FROM categories WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	const query = `
        SELECT id, name, description, image_url, created_at, updated_at
        FROM categories WHERE name=$1`
	return r.fetchSingle(ctx, query, name)
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `
        SELECT id, name, description, image_url, created_at, updated_at
        FROM categories ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := scanCategory(rows, &category); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Category, error) {
	var category domain.Category
	if err := scanCategory(r.db.QueryRow(ctx, query, arg), &category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func scanCategory(row rowScanner, category *domain.Category) error {
	return row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.ImageURL,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
}
