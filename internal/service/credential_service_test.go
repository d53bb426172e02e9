package service

import (
	"github.com/servicelink/admin-service/internal/auth"
	"github.com/servicelink/admin-service/internal/domain"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

func (s *serviceSuite) accountHash(id string) string {
	acc, err := s.store.Stores().Accounts.GetByID(s.ctx, id)
	s.Require().NoError(err)
	return acc.PasswordHash
}

func (s *serviceSuite) TestChangeUserPassword() {
	user := s.store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, IsActive: true, PasswordHash: "old"})

	s.Require().NoError(s.credentials.ChangeUserPassword(s.ctx, s.admin, user.ID, "n3w-password"))
	s.True(auth.PasswordMatches(s.accountHash(user.ID), "n3w-password"))

	notes := s.notifications(user.ID)
	s.Require().Len(notes, 1)
	s.Equal("Password Changed", notes[0].Title)
	s.Equal(domain.NotificationTypeGeneral, notes[0].Type)
}

func (s *serviceSuite) TestChangeUserPasswordByNonAdmin() {
	user := s.store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, IsActive: true, PasswordHash: "old"})
	other := s.store.SeedAccount(domain.Account{Email: "p@example.com", Role: domain.RoleProvider, IsActive: true})

	callers := []domain.Caller{
		{ID: other.ID, Role: domain.RoleProvider},
		// Claims ADMIN but the stored account is not one.
		{ID: other.ID, Role: domain.RoleAdmin},
		// Claims ADMIN but has no stored account.
		{ID: "ghost", Role: domain.RoleAdmin},
	}
	for _, caller := range callers {
		err := s.credentials.ChangeUserPassword(s.ctx, caller, user.ID, "n3w-password")
		s.requireCode(err, apperrors.CodeUnauthorized)
	}

	s.Equal("old", s.accountHash(user.ID))
	s.Empty(s.notifications(user.ID))
}

func (s *serviceSuite) TestChangeUserPasswordErrors() {
	err := s.credentials.ChangeUserPassword(s.ctx, s.admin, "missing", "n3w-password")
	s.requireCode(err, apperrors.CodeNotFound)

	user := s.store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, PasswordHash: "old"})
	err = s.credentials.ChangeUserPassword(s.ctx, s.admin, user.ID, "123")
	s.requireCode(err, apperrors.CodeValidation)
	s.Equal("old", s.accountHash(user.ID))
}

func (s *serviceSuite) TestSetPassword() {
	user := s.store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, PasswordHash: "old"})

	s.Require().NoError(s.credentials.SetPassword(s.ctx, " C@example.com ", "fresh-pass"))
	s.True(auth.PasswordMatches(s.accountHash(user.ID), "fresh-pass"))
	s.Empty(s.notifications(user.ID))

	err := s.credentials.SetPassword(s.ctx, "nobody@example.com", "fresh-pass")
	s.requireCode(err, apperrors.CodeNotFound)
}

func (s *serviceSuite) TestCreateAdminUser() {
	summary, err := s.credentials.CreateAdminUser(s.ctx, CreateAdminInput{
		Email:     "Second@Example.com",
		Password:  "admin-pass",
		FirstName: "Sam",
		LastName:  "Lee",
	})
	s.Require().NoError(err)
	s.Equal("second@example.com", summary.Email)
	s.Equal(domain.RoleAdmin, summary.Role)
	s.True(summary.IsActive)
	s.True(summary.IsVerified)
	s.True(auth.PasswordMatches(s.accountHash(summary.ID), "admin-pass"))

	_, err = s.credentials.CreateAdminUser(s.ctx, CreateAdminInput{Email: "second@example.com", Password: "admin-pass"})
	s.requireCode(err, apperrors.CodeConflict)

	_, err = s.credentials.CreateAdminUser(s.ctx, CreateAdminInput{Email: "", Password: "admin-pass"})
	s.requireCode(err, apperrors.CodeValidation)
}

func (s *serviceSuite) TestLogin() {
	s.auth = NewAuthService(authConfig(), s.store.Stores().Accounts)

	summary, token, exp, err := s.auth.Login(s.ctx, "ROOT@example.com", "admin-pass")
	s.Require().NoError(err)
	s.Equal(s.admin.ID, summary.ID)
	s.NotEmpty(token)
	s.False(exp.IsZero())

	claims, err := s.auth.TokenManager().ParseToken(token)
	s.Require().NoError(err)
	s.Equal(s.admin.ID, claims.AccountID)

	_, _, _, err = s.auth.Login(s.ctx, "root@example.com", "wrong")
	s.requireCode(err, apperrors.CodeUnauthorized)
	_, _, _, err = s.auth.Login(s.ctx, "nobody@example.com", "admin-pass")
	s.requireCode(err, apperrors.CodeUnauthorized)

	hash, err := auth.NewPasswordHasher(4).Hash("client-pass")
	s.Require().NoError(err)
	s.store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, IsActive: true, PasswordHash: hash})
	_, _, _, err = s.auth.Login(s.ctx, "c@example.com", "client-pass")
	s.requireCode(err, apperrors.CodeForbidden)
}
