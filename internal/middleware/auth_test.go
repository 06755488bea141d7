package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func newAuthTestApp(t *testing.T, issuer *auth.Issuer) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", AuthRequired(issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID":   c.Locals("userID"),
			"username": c.Locals("username"),
			"isAdmin":  c.Locals("isAdmin"),
		})
	})
	app.Get("/admin", AdminRequired(issuer), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	issuer := auth.NewIssuer(testSecret)
	app := newAuthTestApp(t, issuer)

	token, err := issuer.Issue(auth.Identity{UserID: 42, Username: "alice"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		cookie         string
		expectedStatus int
	}{
		{
			name:           "valid bearer token",
			authHeader:     "Bearer " + token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid cookie token",
			cookie:         token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			authHeader:     "Token " + token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not.a.token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong secret",
			authHeader:     "Bearer " + mustIssue(t, auth.NewIssuer("another-secret-another-secret-12345678"), 42),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tt.cookie})
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequired_SetsLocals(t *testing.T) {
	issuer := auth.NewIssuer(testSecret)
	app := newAuthTestApp(t, issuer)

	token, err := issuer.Issue(auth.Identity{UserID: 7, Username: "bob", IsAdmin: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID   uint   `json:"userID"`
		Username string `json:"username"`
		IsAdmin  bool   `json:"isAdmin"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint(7), body.UserID)
	assert.Equal(t, "bob", body.Username)
	assert.True(t, body.IsAdmin)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	// Correctly signed but past its expiry.
	claims := jwt.MapClaims{
		"sub":      "42",
		"username": "alice",
		"iss":      "inkwell-api",
		"aud":      "inkwell-client",
		"iat":      time.Now().Add(-25 * time.Hour).Unix(),
		"exp":      time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	app := newAuthTestApp(t, auth.NewIssuer(testSecret))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, appErr := app.Test(req)
	require.NoError(t, appErr)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequired(t *testing.T) {
	issuer := auth.NewIssuer(testSecret)
	app := newAuthTestApp(t, issuer)

	adminToken, err := issuer.Issue(auth.Identity{UserID: 1, Username: "admin", IsAdmin: true})
	require.NoError(t, err)
	userToken, err := issuer.Issue(auth.Identity{UserID: 2, Username: "member"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"admin token passes", adminToken, http.StatusOK},
		{"regular token forbidden", userToken, http.StatusForbidden},
		{"no token unauthorized", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func mustIssue(t *testing.T, issuer *auth.Issuer, userID uint) string {
	t.Helper()
	token, err := issuer.Issue(auth.Identity{UserID: userID, Username: "test"})
	require.NoError(t, err)
	return token
}
