package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Pulse/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindRegister(t *testing.T, body map[string]any) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerValidators()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	var req dto.RegisterRequest
	return c.ShouldBindJSON(&req)
}

func TestUsernameBindingRule(t *testing.T) {
	valid := func(username string) map[string]any {
		return map[string]any{
			"email":    "alice@example.com",
			"username": username,
			"password": "hunter2hunter2",
		}
	}

	for _, ok := range []string{"alice", "Alice_99", "abc", "a2345678901234567890"} {
		assert.NoError(t, bindRegister(t, valid(ok)), "username %q", ok)
	}
	for _, bad := range []string{"ab", "has space", "dash-ed", "ünicode", "a234567890123456789012"} {
		assert.Error(t, bindRegister(t, valid(bad)), "username %q", bad)
	}
}

func TestRegisterBindingRules(t *testing.T) {
	base := map[string]any{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "hunter2hunter2",
	}
	assert.NoError(t, bindRegister(t, base))

	for name, mutate := range map[string]func(m map[string]any){
		"missing email":   func(m map[string]any) { delete(m, "email") },
		"bad email":       func(m map[string]any) { m["email"] = "not-an-email" },
		"short password":  func(m map[string]any) { m["password"] = "short" },
		"empty firstName": func(m map[string]any) { m["firstName"] = "" },
	} {
		t.Run(name, func(t *testing.T) {
			body := map[string]any{}
			for k, v := range base {
				body[k] = v
			}
			mutate(body)
			assert.Error(t, bindRegister(t, body))
		})
	}
}
