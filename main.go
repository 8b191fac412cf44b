package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balajimuthu0107/codance/internal/config"
	"github.com/balajimuthu0107/codance/internal/events"
	"github.com/balajimuthu0107/codance/internal/handlers"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/balajimuthu0107/codance/internal/server"
	"github.com/balajimuthu0107/codance/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var bus events.Bus
	if cfg.Redis.URL != "" {
		redisBus, err := events.NewRedisBus(cfg.Redis, log)
		if err != nil {
			log.Fatal("failed to connect redis event bus", "error", err.Error())
		}
		bus = redisBus
		log.Info("event bus: redis")
	} else {
		bus = events.NewMemoryBus()
		log.Info("event bus: in-memory")
	}

	forwarder := services.NewForwarder(cfg.N8N, log)

	var classifyProviders []services.ClassificationProvider
	if cfg.OpenAIEnabled() {
		classifyProviders = append(classifyProviders, services.NewOpenAIService(cfg.OpenAI, log))
		log.Info("classification provider enabled", "provider", "openai", "model", cfg.OpenAI.Model)
	}

	var draftProviders []services.DraftProvider
	if cfg.SimAIEnabled() {
		draftProviders = append(draftProviders, services.NewSimAIService(cfg.SimAI, log))
		log.Info("draft provider enabled", "provider", "sim.ai")
	}
	if cfg.OpenAIEnabled() {
		draftProviders = append(draftProviders, services.NewOpenAIService(cfg.OpenAI, log))
	}

	classifier := services.NewClassifier(classifyProviders, bus, forwarder, log)
	responder := services.NewResponder(draftProviders, bus, forwarder, log)
	sender := services.NewSender(bus, forwarder, log)
	intake := services.NewIntakeOrchestrator(classifier, responder, sender, bus, forwarder, log)
	tickets := services.NewTicketService(classifier, responder, log)
	analytics := services.NewAnalyticsService()
	inbound := services.NewInboundBuffer(services.InboundBufferCapacity)

	router := server.New(server.Handlers{
		Pipeline:  handlers.NewPipelineHandler(classifier, responder, log),
		Inbox:     handlers.NewInboxHandler(intake, sender, tickets, log),
		Email:     handlers.NewEmailHandler(forwarder, log),
		Feedback:  handlers.NewFeedbackHandler(forwarder, log),
		Webhook:   handlers.NewWebhookHandler(inbound, cfg.N8N.InboundSecret, log),
		Events:    handlers.NewEventsHandler(bus, log),
		Analytics: handlers.NewAnalyticsHandler(analytics),
	}, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server listening", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err.Error())
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}

	forwarder.Flush()
	if err := bus.Close(); err != nil {
		log.Error("event bus close failed", "error", err.Error())
	}

	log.Info("server stopped")
}
