package service

import (
	"context"
	"errors"
	"strings"

	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/repository"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

// CategoryService manages service categories.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CreateCategory adds a category with a unique name.
func (s *CategoryService) CreateCategory(ctx context.Context, name string, description, imageURL *string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name is required", map[string]any{"field": "name"})
	}
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("category already exists", map[string]any{"name": name})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError(err)
	}

	category := &domain.Category{Name: name, Description: description, ImageURL: imageURL}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, mapStoreError(err, "category", map[string]any{"name": name})
	}
	return category, nil
}

// ListCategories returns all categories ordered by name.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return categories, nil
}

// EditCategory applies patch to the category. Renaming onto another
// category's name is a conflict.
func (s *CategoryService) EditCategory(ctx context.Context, id string, patch domain.CategoryPatch) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "category", map[string]any{"category_id": id})
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("category name cannot be empty", map[string]any{"field": "name"})
		}
		if name != category.Name {
			existing, err := s.categories.GetByName(ctx, name)
			switch {
			case err == nil && existing.ID != category.ID:
				return nil, apperrors.NewConflict("category already exists", map[string]any{"name": name})
			case err != nil && !errors.Is(err, repository.ErrNotFound):
				return nil, apperrors.NewInternalError(err)
			}
		}
		category.Name = name
	}
	if patch.Description != nil {
		category.Description = patch.Description
	}
	if patch.ImageURL != nil {
		category.ImageURL = patch.ImageURL
	}

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, mapStoreError(err, "category", map[string]any{"category_id": id})
	}
	return category, nil
}
