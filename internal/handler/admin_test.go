package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inmobot-ai/realty-platform/internal/model"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
)

func TestAdminMetrics(t *testing.T) {
	st := &fakeStore{}
	st.counts.agents = 12
	st.counts.properties = 40
	st.counts.active = 9

	h := NewAdminHandler(st, 499, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/metrics", nil)
	rec := httptest.NewRecorder()
	h.Metrics(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var m model.AdminMetrics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&m))
	assert.Equal(t, 12, m.Agents)
	assert.Equal(t, 40, m.Properties)
	assert.Equal(t, 9, m.ActiveAgents)
	assert.Equal(t, float64(9*499), m.MonthlyRevenue)
}

func TestCreateAgentHashesPassword(t *testing.T) {
	st := &fakeStore{}
	h := NewAdminHandler(st, 499, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/agents",
		strings.NewReader(`{"nombre":"Marco","usuario":"marco","password":"secreta123","telefono":"+521555"}`))
	rec := httptest.NewRecorder()
	h.CreateAgent(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, st.created, 1)

	created := st.created[0]
	assert.Equal(t, "marco", created.Username)
	assert.Equal(t, model.RoleAgent, created.Role)
	assert.NotEqual(t, "secreta123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secreta123")))

	// The hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), created.PasswordHash)
}

func TestCreateAgentShortPassword(t *testing.T) {
	h := NewAdminHandler(&fakeStore{}, 499, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/agents",
		strings.NewReader(`{"nombre":"Marco","usuario":"marco","password":"corta"}`))
	rec := httptest.NewRecorder()
	h.CreateAgent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenewSubscription(t *testing.T) {
	st := &fakeStore{}
	h := NewAdminHandler(st, 499, logger.NewNop())

	r := chi.NewRouter()
	r.Post("/admin/agents/{id}/subscription", h.RenewSubscription)

	req := httptest.NewRequest(http.MethodPost, "/admin/agents/7/subscription",
		strings.NewReader(`{"hasta":"2027-01-31"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, st.renewed, int64(7))
	assert.Equal(t, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC), st.renewed[7])
}

func TestRenewSubscriptionBadDate(t *testing.T) {
	st := &fakeStore{}
	h := NewAdminHandler(st, 499, logger.NewNop())

	r := chi.NewRouter()
	r.Post("/admin/agents/{id}/subscription", h.RenewSubscription)

	req := httptest.NewRequest(http.MethodPost, "/admin/agents/7/subscription",
		strings.NewReader(`{"hasta":"31/01/2027"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, st.renewed)
}
