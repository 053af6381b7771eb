package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/armax-ru/umka-online-gateway/internal/cashbox"
	"github.com/armax-ru/umka-online-gateway/internal/config"
	"github.com/armax-ru/umka-online-gateway/internal/document"
	"github.com/armax-ru/umka-online-gateway/internal/handlers"
	"github.com/armax-ru/umka-online-gateway/internal/mapping"
	"github.com/armax-ru/umka-online-gateway/internal/registry"
	"github.com/armax-ru/umka-online-gateway/internal/services"
	"github.com/armax-ru/umka-online-gateway/internal/session"
	"github.com/armax-ru/umka-online-gateway/internal/storage"
	"github.com/armax-ru/umka-online-gateway/internal/tracker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Server.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	profile, _ := mapping.ByName(cfg.Gateway.Profile)

	// Wire the collaborators: option store, transport (real or standalone
	// mock), session, engine and builder.
	options := storage.NewMemoryOptions()
	transport := services.NewTransport(cfg, logger)
	if cfg.StandaloneMode {
		logger.Info("running in standalone mode with the in-process registrar")
	}

	sess := session.New(transport, options, cfg.Gateway.BaseURL, cfg.Gateway.GroupCode, cfg.Auth.Login, cfg.Auth.Pass, logger)
	engine := registry.NewEngine(transport, sess, cfg.Gateway.BaseURL, cfg.Gateway.GroupCode, logger)
	builder := document.NewBuilder(profile, cfg.Settings(), callbackDomain(cfg), services.DigitsNormalizer{})

	box := cashbox.New(builder, engine, profile)
	pending := tracker.New(logger)

	// Forget registrations nobody resolved; the host re-polls on its own
	// cadence, so stale entries only leak memory.
	go func() {
		for range time.Tick(time.Minute) {
			pending.CleanupExpired(24 * time.Hour)
		}
	}()

	var router *gin.Engine
	if cfg.Server.Verbose {
		gin.SetMode(gin.DebugMode)
		router = gin.Default()
	} else {
		gin.SetMode(gin.ReleaseMode)
		router = gin.New()
		router.Use(gin.Recovery())
	}

	handler := handlers.NewGatewayHandler(box, pending, logger)
	handler.RegisterRoutes(router)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("starting fiscal gateway", "addr", addr, "profile", profile.Name, "group_code", cfg.Gateway.GroupCode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// callbackDomain extracts the host part of the callback URL for external id
// generation; the registering party's domain keys every document id.
func callbackDomain(cfg *config.Config) string {
	return document.DomainFromURL(cfg.Gateway.CallbackURL)
}
