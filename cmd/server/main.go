package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meetbook/internal/api"
	"meetbook/internal/audit"
	"meetbook/internal/availability"
	"meetbook/internal/booking"
	"meetbook/internal/config"
	"meetbook/internal/hub"
	"meetbook/internal/metrics"
	"meetbook/internal/notify"
	"meetbook/internal/settings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("MEETBOOK_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hubClient := hub.NewClient(cfg.Hub.BaseURL, cfg.Hub.ClientID, cfg.Hub.ClientSecret, cfg.Hub.TokenURL)
	var rdb *redis.Client
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		hubClient.UseRedisCache(rdb, cfg.HubCacheTTL())
	}

	settingsStore, err := settings.NewStore(cfg.Storage.SettingsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open settings store error")
	}

	var auditDB *audit.DB
	if cfg.Audit.Enabled {
		auditDB, err = audit.Open(cfg.Audit.DBPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("open audit db error")
		}
		defer auditDB.Close()
	}

	notifier, err := buildNotifier(cfg, hubClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("create notifier error")
	}

	availabilitySvc := availability.NewService(hubClient, hubClient, settingsStore, logger)

	var recorder booking.Recorder
	if auditDB != nil {
		recorder = auditDB
	}
	bookingSvc := booking.NewService(hubClient, hubClient, settingsStore, notifier, recorder, hubClient.MeetingURL, logger)

	var auditLog api.AuditLog
	if auditDB != nil {
		auditLog = auditDB
	}
	server := api.NewServer(cfg.Server.Port, cfg.Server.APIKey, availabilitySvc, bookingSvc, settingsStore, auditLog, logger)

	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, hubClient, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	if auditDB != nil {
		go startAuditMaintenance(ctx, auditDB, cfg, &logger)
	}

	logger.Info().Msg("meetbook server started")
	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("api server error")
	}
}

func buildNotifier(cfg *config.Config, hubClient *hub.Client) (notify.Notifier, error) {
	switch cfg.Notify.Channel {
	case "chat":
		return notify.NewChatNotifier(hubClient, cfg.Notify.RatePerMinute), nil
	case "telegram":
		return notify.NewTelegramNotifier(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID, cfg.Notify.RatePerMinute)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown notify channel %q", cfg.Notify.Channel)
	}
}

// startAuditMaintenance prunes expired audit entries and, when configured,
// mirrors the trail to a Google Sheets spreadsheet.
func startAuditMaintenance(ctx context.Context, auditDB *audit.DB, cfg *config.Config, logger *zerolog.Logger) {
	var exporter *audit.SheetsExporter
	if cfg.Audit.SheetsSpreadsheetID != "" && cfg.Audit.GoogleCredentialsFile != "" {
		var err error
		exporter, err = audit.NewSheetsExporter(ctx, cfg.Audit.GoogleCredentialsFile, cfg.Audit.SheetsSpreadsheetID, *logger)
		if err != nil {
			logger.Error().Err(err).Msg("sheets exporter unavailable, continuing without it")
		}
	}

	runAuditMaintenance(ctx, auditDB, exporter, cfg, logger)

	ticker := time.NewTicker(cfg.SheetsSyncInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runAuditMaintenance(ctx, auditDB, exporter, cfg, logger)
		case <-ctx.Done():
			return
		}
	}
}

func runAuditMaintenance(ctx context.Context, auditDB *audit.DB, exporter *audit.SheetsExporter, cfg *config.Config, logger *zerolog.Logger) {
	if retention := cfg.AuditRetention(); retention > 0 {
		deleted, err := auditDB.DeleteOlderThan(ctx, retention)
		if err != nil {
			logger.Error().Err(err).Msg("audit cleanup failed")
		} else if deleted > 0 {
			logger.Info().Int64("deleted", deleted).Msg("pruned expired audit entries")
		}
	}

	if exporter == nil {
		return
	}
	entries, err := auditDB.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("audit list failed")
		return
	}
	if err := exporter.Sync(ctx, entries); err != nil {
		logger.Error().Err(err).Msg("sheets sync failed")
	} else {
		logger.Info().Int("entries", len(entries)).Msg("audit trail synced to sheets")
	}
}

func startHealthServer(ctx context.Context, port int, hubClient *hub.Client, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := hubClient.HealthCheck(ctxPing); err != nil {
			http.Error(w, "hub not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
