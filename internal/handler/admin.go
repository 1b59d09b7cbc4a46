package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/inmobot-ai/realty-platform/internal/middleware"
	"github.com/inmobot-ai/realty-platform/internal/model"
	"github.com/inmobot-ai/realty-platform/internal/store"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
)

// AdminHandler serves the platform-owner dashboard: aggregate metrics,
// agent provisioning and subscription renewals.
type AdminHandler struct {
	store     store.Store
	planPrice float64
	logger    *logger.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(st store.Store, planPrice float64, log *logger.Logger) *AdminHandler {
	return &AdminHandler{store: st, planPrice: planPrice, logger: log}
}

// Metrics handles GET /api/v1/admin/metrics.
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	agents, err := h.store.CountAgents(ctx)
	if err != nil {
		h.logger.Error("count agents failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	properties, err := h.store.CountProperties(ctx)
	if err != nil {
		h.logger.Error("count properties failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	active, err := h.store.CountActiveAgents(ctx, time.Now())
	if err != nil {
		h.logger.Error("count active agents failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, model.AdminMetrics{
		Agents:         agents,
		Properties:     properties,
		ActiveAgents:   active,
		MonthlyRevenue: float64(active) * h.planPrice,
	})
}

// ListAgents handles GET /api/v1/admin/agents.
func (h *AdminHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.store.ListAgents(r.Context())
	if err != nil {
		h.logger.Error("list agents failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if agents == nil {
		agents = []model.Agent{}
	}
	writeJSON(w, http.StatusOK, agents)
}

// CreateAgent handles POST /api/v1/admin/agents.
func (h *AdminHandler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateUsername(req.Username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password hash failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleAgent
	}

	agent := &model.Agent{
		Name:               req.Name,
		Username:           req.Username,
		PasswordHash:       string(hash),
		Email:              req.Email,
		Phone:              req.Phone,
		CalendarID:         req.CalendarID,
		SubscriptionStatus: model.SubscriptionUnset,
		Role:               role,
	}

	id, err := h.store.CreateAgent(r.Context(), agent)
	if err != nil {
		h.logger.Error("create agent failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	agent.ID = id

	h.logger.Info("agent provisioned", zap.Int64("agent_id", id), zap.String("usuario", agent.Username))
	writeJSON(w, http.StatusCreated, agent)
}

// RenewSubscription handles POST /api/v1/admin/agents/{id}/subscription.
func (h *AdminHandler) RenewSubscription(w http.ResponseWriter, r *http.Request) {
	agentID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	var req model.RenewSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	until, err := time.Parse("2006-01-02", req.Until)
	if err != nil {
		writeError(w, http.StatusBadRequest, "hasta must be a YYYY-MM-DD date")
		return
	}

	if err := h.store.UpdateSubscription(r.Context(), agentID, model.SubscriptionActive, until); err != nil {
		if err == store.ErrNotFound {
			writeError(w, http.StatusNotFound, "agent not found")
			return
		}
		h.logger.Error("renew subscription failed", zap.Error(err), zap.Int64("agent_id", agentID))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("subscription renewed", zap.Int64("agent_id", agentID), zap.Time("hasta", until))
	writeJSON(w, http.StatusOK, map[string]string{"estado": "active", "hasta": req.Until})
}
