package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/inmobot-ai/realty-platform/internal/calendar"
	"github.com/inmobot-ai/realty-platform/internal/config"
	"github.com/inmobot-ai/realty-platform/internal/handler"
	"github.com/inmobot-ai/realty-platform/internal/llm"
	"github.com/inmobot-ai/realty-platform/internal/mailer"
	"github.com/inmobot-ai/realty-platform/internal/middleware"
	"github.com/inmobot-ai/realty-platform/internal/service"
	"github.com/inmobot-ai/realty-platform/internal/session"
	"github.com/inmobot-ai/realty-platform/internal/store"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
	"github.com/inmobot-ai/realty-platform/pkg/tracing"
)

const serviceName = "realty-platform"

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, serviceName, cfg.TracingEndpoint)
		if err != nil {
			log.Fatal("failed to initialize tracing", zap.Error(err))
		}
		defer tracing.Shutdown(context.Background(), tp)
	}

	st, err := store.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer st.Close()

	llmClient, err := buildLLMClient(cfg)
	if err != nil {
		log.Fatal("failed to create llm client", zap.Error(err))
	}
	log.Info("llm client ready", zap.String("provider", llmClient.Name()), zap.String("model", cfg.LLMModel))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal("invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	var scheduler service.Scheduler
	if cfg.GoogleCredentialsFile != "" {
		cal, err := calendar.New(ctx, cfg.GoogleCredentialsFile, cfg.Timezone)
		if err != nil {
			log.Fatal("failed to create calendar service", zap.Error(err))
		}
		scheduler = cal
		loc = cal.Location()
		log.Info("calendar integration enabled")
	} else {
		log.Warn("no calendar credentials configured, viewings will not be booked")
	}

	sessions := session.NewStore()
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	conversations := service.NewConversationService(st, sessions, llmClient, scheduler, service.ConversationConfig{
		DefaultAgentID: cfg.DefaultAgentID,
		Model:          cfg.LLMModel,
		Temperature:    cfg.LLMTemperature,
		Location:       loc,
	}, log)
	listings := service.NewListingService(st, llmClient, cfg.LLMModel, log)

	webhookHandler := handler.NewWebhookHandler(conversations, log)
	authHandler := handler.NewAuthHandler(st, mail, cfg.JWTSecret, cfg.JWTExpiration, log)
	propertyHandler := handler.NewPropertyHandler(listings, log)
	adminHandler := handler.NewAdminHandler(st, cfg.PlanPrice, log)
	healthHandler := handler.NewHealthHandler(st)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Provider-facing webhook, no session auth.
	r.Post("/webhook", webhookHandler.Inbound)

	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/recover", authHandler.Recover)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Subscription(st))

				r.Get("/properties", propertyHandler.List)
				r.Post("/properties", propertyHandler.Save)
				r.Post("/properties/extract", propertyHandler.Extract)
				r.Delete("/properties/{id}", propertyHandler.Delete)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/metrics", adminHandler.Metrics)
				r.Get("/agents", adminHandler.ListAgents)
				r.Post("/agents", adminHandler.CreateAgent)
				r.Post("/agents/{id}/subscription", adminHandler.RenewSubscription)
			})
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("server stopped")
}

func buildLLMClient(cfg *config.Config) (llm.Client, error) {
	if cfg.DefaultLLM == string(llm.ProviderAnthropic) && cfg.AnthropicAPIKey != "" {
		return llm.NewClient(llm.ProviderAnthropic, cfg.AnthropicAPIKey)
	}
	return llm.NewClient(llm.ProviderOpenAI, cfg.OpenAIAPIKey)
}
