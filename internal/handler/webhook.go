package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/inmobot-ai/realty-platform/internal/twiml"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
)

// Orchestrator turns one inbound message into an outbound reply.
type Orchestrator interface {
	HandleInbound(ctx context.Context, from, to, body string) (string, string)
}

// WebhookHandler receives inbound SMS/WhatsApp callbacks from the messaging
// provider.
type WebhookHandler struct {
	orchestrator Orchestrator
	logger       *logger.Logger
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(orchestrator Orchestrator, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{orchestrator: orchestrator, logger: log}
}

// Inbound handles POST /webhook. The provider retries on non-2xx, so the
// handler always answers 200 with a markup document.
func (h *WebhookHandler) Inbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("webhook form parse failed", zap.Error(err))
	}

	from := r.FormValue("From")
	to := r.FormValue("To")
	body := r.FormValue("Body")

	text, mediaURL := h.orchestrator.HandleInbound(r.Context(), from, to, body)

	doc, err := twiml.Render(text, mediaURL)
	if err != nil {
		h.logger.Error("render reply failed", zap.Error(err))
		doc = []byte(`<?xml version="1.0" encoding="UTF-8"?><Response></Response>`)
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
