package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/inmobot-ai/realty-platform/internal/mailer"
	"github.com/inmobot-ai/realty-platform/internal/middleware"
	"github.com/inmobot-ai/realty-platform/internal/model"
	"github.com/inmobot-ai/realty-platform/internal/store"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
)

// AuthHandler serves dashboard login and password recovery.
type AuthHandler struct {
	store     store.Store
	mailer    *mailer.Mailer
	jwtSecret string
	jwtTTL    time.Duration
	logger    *logger.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(st store.Store, m *mailer.Mailer, jwtSecret string, jwtTTL time.Duration, log *logger.Logger) *AuthHandler {
	return &AuthHandler{store: st, mailer: m, jwtSecret: jwtSecret, jwtTTL: jwtTTL, logger: log}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateUsername(req.Username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	agent, err := h.store.GetAgentByUsername(r.Context(), req.Username)
	if err != nil {
		// Same answer for unknown user and bad password.
		writeError(w, http.StatusUnauthorized, "usuario o contraseña incorrectos")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "usuario o contraseña incorrectos")
		return
	}

	token, err := middleware.NewToken(h.jwtSecret, agent, h.jwtTTL)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("agent logged in", zap.Int64("agent_id", agent.ID), zap.String("usuario", agent.Username))
	writeJSON(w, http.StatusOK, model.LoginResponse{Token: token, Agent: agent})
}

// recoverRequest is the password recovery payload.
type recoverRequest struct {
	Username string `json:"usuario"`
}

// Recover handles POST /api/v1/auth/recover. It always answers 202 so the
// endpoint cannot be used to probe for usernames.
func (h *AuthHandler) Recover(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	agent, err := h.store.GetAgentByUsername(r.Context(), req.Username)
	if err == nil && agent.Email != "" && h.mailer != nil && h.mailer.Enabled() {
		body := "Hola " + agent.Name + ",\n\n" +
			"Recibimos una solicitud para recuperar tu acceso. " +
			"Contacta a tu administrador para restablecer tu contraseña.\n"
		if err := h.mailer.Send(agent.Email, "Recuperación de acceso", body); err != nil {
			h.logger.Warn("recovery mail failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"mensaje": "si la cuenta existe, recibirás instrucciones por correo",
	})
}
