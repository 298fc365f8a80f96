package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	dom "Pulse/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c, w
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "?page=3&limit=25", 3, 25},
		{"limit clamped", "?limit=100", 1, 50},
		{"zero falls back", "?page=0&limit=0", 1, 10},
		{"negative falls back", "?page=-2&limit=-5", 1, 10},
		{"garbage falls back", "?page=abc&limit=xyz", 1, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := testContext(t, "/posts"+tc.query)
			page, limit := parsePagination(c)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
		})
	}
}

func TestParseUUIDParam(t *testing.T) {
	c, _ := testContext(t, "/users/x")
	id := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	got, ok := parseUUIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestParseUUIDParamInvalid(t *testing.T) {
	c, w := testContext(t, "/users/x")
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := parseUUIDParam(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"ERROR","message":"invalid id format"}`, w.Body.String())
}

func TestEnvelopeShape(t *testing.T) {
	c, w := testContext(t, "/")
	success(c, http.StatusCreated, "User registered successfully", gin.H{"id": "1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"status":"SUCCESS","message":"User registered successfully","data":{"id":"1"}}`, w.Body.String())

	c, w = testContext(t, "/")
	fail(c, http.StatusNotFound, "Post not found")
	assert.Equal(t, http.StatusNotFound, w.Code)
	// No data key on errors, no message key when empty.
	assert.JSONEq(t, `{"status":"ERROR","message":"Post not found"}`, w.Body.String())
}

func TestUserResponseHidesPasswordHash(t *testing.T) {
	c, w := testContext(t, "/")
	u := userToResponse(dom.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "$2a$10$secretdigest",
	})
	success(c, http.StatusOK, "", u)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "secretdigest")
}
