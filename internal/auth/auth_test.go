package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/repository/memory"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	token, exp, err := tm.GenerateToken("acc-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	_, err = NewTokenManager("other", 5).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	issued := time.Now().Add(-time.Hour)
	tm.now = func() time.Time { return issued }
	token, _, err := tm.GenerateToken("acc-1", domain.RoleAdmin)
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestPasswordHashing(t *testing.T) {
	hasher := NewPasswordHasher(4)
	hash, err := hasher.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, PasswordMatches(hash, "s3cret!"))
	assert.False(t, PasswordMatches(hash, "wrong"))
	assert.False(t, PasswordMatches("", ""))

	_, err = hasher.Hash("12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func newTestApp(t *testing.T) (*fiber.App, *TokenManager, *memory.Store) {
	t.Helper()
	store := memory.New()
	tm := NewTokenManager("secret", 5)
	mw := NewAuthMiddleware(tm, store.Stores().Accounts)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})
	app.Get("/admin", mw.Handle, RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString(CallerFromContext(c).ID)
	})
	return app, tm, store
}

func TestMiddlewareAndRoleGuard(t *testing.T) {
	app, tm, store := newTestApp(t)
	admin := store.SeedAccount(domain.Account{Email: "root@example.com", Role: domain.RoleAdmin, IsActive: true})
	client := store.SeedAccount(domain.Account{Email: "c@example.com", Role: domain.RoleClient, IsActive: true})
	suspended := store.SeedAccount(domain.Account{Email: "s@example.com", Role: domain.RoleAdmin, IsActive: false})

	bearer := func(id string, role domain.Role) string {
		token, _, err := tm.GenerateToken(id, role)
		require.NoError(t, err)
		return "Bearer " + token
	}

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"unknown account", bearer("ghost", domain.RoleAdmin), http.StatusUnauthorized},
		{"inactive admin", bearer(suspended.ID, domain.RoleAdmin), http.StatusUnauthorized},
		{"client with forged role", bearer(client.ID, domain.RoleAdmin), http.StatusForbidden},
		{"admin", bearer(admin.ID, domain.RoleAdmin), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestCallerFromContextWithoutPrincipal(t *testing.T) {
	app := fiber.New()
	var caller domain.Caller
	app.Get("/", func(c *fiber.Ctx) error {
		caller = CallerFromContext(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.False(t, caller.IsAdmin())
}
