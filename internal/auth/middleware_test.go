package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := NewTokenManager("unit-test-secret-0123456789", time.Hour)

	r := gin.New()
	whoami := func(c *gin.Context) {
		if p, ok := PrincipalFromContext(c); ok {
			c.JSON(http.StatusOK, gin.H{"username": p.Username})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": ""})
	}
	r.GET("/private", RequireAuth(tokens), whoami)
	r.GET("/public", OptionalAuth(tokens), whoami)
	return r, tokens
}

func do(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	signed, err := tokens.Issue(Principal{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	w := do(r, "/private", "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())
}

func TestRequireAuthRejects(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	signed, err := tokens.Issue(Principal{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token " + signed},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer garbage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, "/private", tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"status":"ERROR"`)
		})
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)
	expired := NewTokenManager("unit-test-secret-0123456789", -time.Minute)

	signed, err := expired.Issue(Principal{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	w := do(r, "/private", "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	r, tokens := newAuthTestRouter(t)

	// No token: the request proceeds unauthenticated.
	w := do(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":""}`, w.Body.String())

	// Invalid token: still no rejection.
	w = do(r, "/public", "Bearer garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":""}`, w.Body.String())

	// Valid token: the principal is attached.
	signed, err := tokens.Issue(Principal{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)
	w = do(r, "/public", "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())
}
