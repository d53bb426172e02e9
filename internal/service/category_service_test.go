package service

import (
	"github.com/servicelink/admin-service/internal/config"
	"github.com/servicelink/admin-service/internal/domain"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

func authConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4}
}

func strPtr(v string) *string { return &v }

func (s *serviceSuite) TestCategoryLifecycle() {
	cleaning, err := s.categories.CreateCategory(s.ctx, "  Cleaning ", strPtr("Home cleaning"), nil)
	s.Require().NoError(err)
	s.Equal("Cleaning", cleaning.Name)
	s.NotEmpty(cleaning.ID)

	_, err = s.categories.CreateCategory(s.ctx, "Cleaning", nil, nil)
	s.requireCode(err, apperrors.CodeConflict)

	_, err = s.categories.CreateCategory(s.ctx, " ", nil, nil)
	s.requireCode(err, apperrors.CodeValidation)

	plumbing, err := s.categories.CreateCategory(s.ctx, "Plumbing", nil, strPtr("/uploads/category/p.png"))
	s.Require().NoError(err)

	list, err := s.categories.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Cleaning", list[0].Name)
	s.Equal("Plumbing", list[1].Name)

	_, err = s.categories.EditCategory(s.ctx, plumbing.ID, domain.CategoryPatch{Name: strPtr("Cleaning")})
	s.requireCode(err, apperrors.CodeConflict)

	edited, err := s.categories.EditCategory(s.ctx, plumbing.ID, domain.CategoryPatch{
		Name:        strPtr("Plumbing & Heating"),
		Description: strPtr("Pipes"),
	})
	s.Require().NoError(err)
	s.Equal("Plumbing & Heating", edited.Name)
	s.Equal("Pipes", *edited.Description)
	s.Equal("/uploads/category/p.png", *edited.ImageURL)

	same, err := s.categories.EditCategory(s.ctx, cleaning.ID, domain.CategoryPatch{Name: strPtr("Cleaning")})
	s.Require().NoError(err)
	s.Equal(cleaning.ID, same.ID)

	_, err = s.categories.EditCategory(s.ctx, "missing", domain.CategoryPatch{})
	s.requireCode(err, apperrors.CodeNotFound)
}
