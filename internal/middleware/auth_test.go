package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobot-ai/realty-platform/internal/model"
)

const testSecret = "test-secret"

func protectedEcho(t *testing.T) (http.Handler, *int64, *model.AgentRole) {
	t.Helper()
	var gotID int64
	var gotRole model.AgentRole
	h := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetAgentID(r.Context())
		gotRole = GetRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return h, &gotID, &gotRole
}

func TestAuthRoundTrip(t *testing.T) {
	agent := &model.Agent{ID: 7, Username: "laura", Role: model.RoleAgent}
	token, err := NewToken(testSecret, agent, time.Hour)
	require.NoError(t, err)

	h, gotID, gotRole := protectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), *gotID)
	assert.Equal(t, model.RoleAgent, *gotRole)
}

func TestAuthMissingHeader(t *testing.T) {
	h, _, _ := protectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	agent := &model.Agent{ID: 7, Username: "laura", Role: model.RoleAgent}
	token, err := NewToken("another-secret", agent, time.Hour)
	require.NoError(t, err)

	h, _, _ := protectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	agent := &model.Agent{ID: 7, Username: "laura", Role: model.RoleAgent}
	token, err := NewToken(testSecret, agent, -time.Minute)
	require.NoError(t, err)

	h, _, _ := protectedEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	admin := &model.Agent{ID: 1, Username: "root", Role: model.RoleAdmin}
	token, err := NewToken(testSecret, admin, time.Hour)
	require.NoError(t, err)

	h := Auth(testSecret)(RequireAdmin(next))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	agentToken, err := NewToken(testSecret, &model.Agent{ID: 2, Username: "laura", Role: model.RoleAgent}, time.Hour)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+agentToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
