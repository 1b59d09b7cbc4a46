// Package service provides business logic for the realty platform.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/inmobot-ai/realty-platform/internal/directive"
	"github.com/inmobot-ai/realty-platform/internal/llm"
	"github.com/inmobot-ai/realty-platform/internal/model"
	"github.com/inmobot-ai/realty-platform/internal/prompt"
	"github.com/inmobot-ai/realty-platform/internal/session"
	"github.com/inmobot-ai/realty-platform/internal/store"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
	"github.com/inmobot-ai/realty-platform/pkg/metrics"
)

// User-visible fallback replies. The webhook must always answer something.
const (
	replySystemBusy    = "Dame un segundo, estoy revisando el sistema... 🤖"
	replyBookingDone   = "¡Listo! Cita agendada. 📝"
	noCalendarAgenda   = "No hay calendario conectado."
	calendarLinkPrefix = "\n\n🗓️ Ver en calendario: "
)

// Scheduler is the calendar capability the orchestrator needs.
type Scheduler interface {
	// Availability renders the coarse free/busy block for a calendar.
	Availability(ctx context.Context, calendarID string) (string, error)

	// CreateVisit books a one-hour viewing and returns its link.
	CreateVisit(ctx context.Context, calendarID, clientName, when string) (string, error)
}

// ConversationConfig carries the orchestrator's fixed settings.
type ConversationConfig struct {
	DefaultAgentID int64
	Model          string
	Temperature    float64
	Location       *time.Location
}

// ConversationService is the webhook orchestrator: it owns per-sender
// history, assembles the system instruction, invokes the model and turns
// embedded directives into side effects.
type ConversationService struct {
	store     store.Store
	sessions  *session.Store
	llm       llm.Client
	scheduler Scheduler // nil when no calendar credentials are configured
	cfg       ConversationConfig
	logger    *logger.Logger
}

// NewConversationService creates the orchestrator.
func NewConversationService(
	st store.Store,
	sessions *session.Store,
	llmClient llm.Client,
	scheduler Scheduler,
	cfg ConversationConfig,
	log *logger.Logger,
) *ConversationService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ConversationService{
		store:     st,
		sessions:  sessions,
		llm:       llmClient,
		scheduler: scheduler,
		cfg:       cfg,
		logger:    log,
	}
}

// HandleInbound processes one inbound message and returns the outbound body
// plus an optional media URL. It never fails: every upstream error degrades
// to a textual reply.
func (s *ConversationService) HandleInbound(ctx context.Context, from, to, body string) (string, string) {
	metrics.WebhookMessagesTotal.Inc()
	log := s.logger.WithSender(from)

	// Serialize exchanges per sender so concurrent webhooks for the same
	// number cannot interleave history appends.
	unlock := s.sessions.Lock(from)
	defer unlock()

	s.sessions.Append(from, model.Turn{Role: model.RoleUser, Content: body})

	agent, err := s.resolveAgent(ctx, to)
	if err != nil {
		log.Error("resolve agent failed", zap.Error(err))
		return replySystemBusy, ""
	}

	props, err := s.store.ListProperties(ctx, agent.ID)
	if err != nil {
		log.Warn("list properties failed, answering with empty inventory", zap.Error(err))
		props = nil
	}

	agenda := noCalendarAgenda
	if agent.HasCalendar() && s.scheduler != nil {
		if text, err := s.scheduler.Availability(ctx, agent.CalendarID); err == nil {
			agenda = text
		} else {
			// Calendar failure must never abort the turn.
			log.Warn("availability lookup failed", zap.Error(err))
		}
	}

	now := time.Now().In(s.cfg.Location)
	system := prompt.BuildSystem(agent.Name, now, prompt.RenderInventory(props, prompt.DetailLimit), agenda)

	history := s.sessions.History(from)
	messages := make([]llm.ChatMessage, 0, len(history)+1)
	messages = append(messages, llm.ChatMessage{Role: string(model.RoleSystem), Content: system})
	for _, turn := range history {
		messages = append(messages, llm.ChatMessage{Role: string(turn.Role), Content: turn.Content})
	}

	start := time.Now()
	resp, err := s.llm.Complete(ctx, &llm.CompletionRequest{
		Model:       s.cfg.Model,
		Messages:    messages,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		// The user's turn stays recorded; the failed turn leaves no
		// assistant entry.
		log.Warn("completion failed", zap.Error(err))
		metrics.RecordLLMCall(s.cfg.Model, "error", time.Since(start).Seconds(), 0, 0)
		return replySystemBusy, ""
	}
	metrics.RecordLLMCall(resp.Model, "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)

	// Markers are stored verbatim in history.
	s.sessions.Append(from, model.Turn{Role: model.RoleAssistant, Content: resp.Content})

	rep := directive.Parse(resp.Content)
	text := rep.Text
	if rep.MediaURL != "" {
		metrics.DirectivesTotal.WithLabelValues("foto").Inc()
	}
	if rep.Booking != nil {
		text = s.handleBooking(ctx, log, agent, from, rep.Booking)
	}

	return text, rep.MediaURL
}

// handleBooking persists the lead and, when a calendar is connected, books
// the viewing. The lead write happens unconditionally once fields were
// extracted; any later failure degrades to a generic confirmation.
func (s *ConversationService) handleBooking(ctx context.Context, log *logger.Logger, agent *model.Agent, from string, b *directive.Booking) string {
	metrics.DirectivesTotal.WithLabelValues("agenda").Inc()

	lead := &model.Lead{
		AgentID:     agent.ID,
		Name:        b.Name,
		Phone:       from,
		Age:         b.Age,
		LifeProfile: b.Profile,
		Interest:    "Cita: " + b.When,
	}
	if _, err := s.store.InsertLead(ctx, lead); err != nil {
		log.Error("insert lead failed", zap.Error(err))
		return replyBookingDone
	}
	metrics.LeadsTotal.Inc()
	log.Info("lead captured", zap.String("name", b.Name), zap.Int64("agent_id", agent.ID))

	if !agent.HasCalendar() || s.scheduler == nil {
		return b.Message
	}

	link, err := s.scheduler.CreateVisit(ctx, agent.CalendarID, b.Name, b.When)
	if err != nil {
		log.Warn("create visit failed", zap.Error(err))
		metrics.AppointmentsTotal.WithLabelValues("error").Inc()
		return replyBookingDone
	}
	metrics.AppointmentsTotal.WithLabelValues("created").Inc()

	return b.Message + calendarLinkPrefix + link
}

// resolveAgent maps the inbound destination number to a tenant. Unknown or
// missing numbers fall back to the configured default agent.
func (s *ConversationService) resolveAgent(ctx context.Context, to string) (*model.Agent, error) {
	if phone := normalizePhone(to); phone != "" {
		agent, err := s.store.GetAgentByPhone(ctx, phone)
		if err == nil {
			return agent, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	return s.store.GetAgent(ctx, s.cfg.DefaultAgentID)
}

// normalizePhone strips the channel prefix some providers add, e.g.
// "whatsapp:+5215512345678".
func normalizePhone(number string) string {
	return strings.TrimPrefix(strings.TrimSpace(number), "whatsapp:")
}
