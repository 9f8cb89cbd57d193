package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/satstack/sats-fiat-bot/internal/bot"
	"github.com/satstack/sats-fiat-bot/internal/convert"
	"github.com/satstack/sats-fiat-bot/internal/health"
	"github.com/satstack/sats-fiat-bot/internal/lifecycle"
	"github.com/satstack/sats-fiat-bot/internal/prefs"
	"github.com/satstack/sats-fiat-bot/internal/rates"
	"github.com/satstack/sats-fiat-bot/internal/session"
	"github.com/satstack/sats-fiat-bot/pkg/config"
	"github.com/satstack/sats-fiat-bot/pkg/graceful"
	"github.com/satstack/sats-fiat-bot/pkg/logger"
	redispkg "github.com/satstack/sats-fiat-bot/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, _, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "sentry init error: %v\n", err)
			os.Exit(1)
		}
	}

	log := logger.New(cfg.Log, cfg.Sentry.Enabled)
	slog.SetDefault(log)

	log.Info("starting sats-fiat bot",
		slog.String("env", cfg.AppEnv),
		slog.String("http_port", cfg.Server.Port),
		slog.String("log_level", cfg.Log.Level),
	)

	shutdown := lifecycle.NewShutdown(log)

	var modeStorage session.Storage = session.NewMemoryStorage()
	var redisChecker *health.RedisChecker
	if cfg.Redis.Addr != "" {
		redisClient, err := redispkg.New(ctx, cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		modeStorage = session.NewRedisStorage(redisClient, log)
		redisChecker = health.NewRedisChecker(redisClient)
		shutdown.Register("redis", func(context.Context) error {
			return redisClient.Close()
		})
	}
	sessions := session.NewManager(modeStorage, log)

	preferences := prefs.NewStore(cfg.Prefs.Path, log)
	if err := preferences.Load(); err != nil {
		// a broken file should not take the bot down; defaults apply
		log.Error("failed to load currency preferences, starting empty", slog.Any("error", err))
	}
	log.Info("currency preferences loaded", slog.Int("count", preferences.Len()))

	if cfg.Prefs.Watch {
		watcher, err := prefs.NewWatcher(preferences, log)
		if err != nil {
			log.Error("failed to start preferences watcher", slog.Any("error", err))
		} else {
			go watcher.Run(ctx)
		}
	}

	priceClient := rates.NewClient(cfg.Rates.BaseURL, cfg.Rates.RequestTimeout, log)
	rateCache := rates.NewCache(priceClient, cfg.Rates.CacheTTL, log)
	engine := convert.NewEngine(rateCache)

	b, err := bot.New(*cfg, log, sessions, preferences, engine)
	if err != nil {
		log.Error("failed to initialize bot", slog.Any("error", err))
		os.Exit(1)
	}
	shutdown.Register("telegram bot", func(context.Context) error {
		b.Stop()
		return nil
	})

	checker := health.NewChecker(log)
	checker.AddCheck("telegram", health.NewTelegramChecker(b.Telebot()))
	if redisChecker != nil {
		checker.AddCheck("redis", redisChecker)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", checker.Handler())

	httpServer := graceful.NewServer(log, &http.Server{
		Addr:    cfg.Server.Port,
		Handler: logger.Middleware(mux),
	}, cfg.Server.ShutdownTimeout)

	go func() {
		if err := httpServer.ListenAndServe(ctx); err != nil {
			log.Error("metrics server stopped with error", slog.Any("error", err))
		}
	}()

	go b.Start()
	log.Info("sats-fiat bot started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := shutdown.Execute(shutdownCtx); err != nil {
		log.Error("shutdown finished with errors", slog.Any("error", err))
	}

	if cfg.Sentry.Enabled {
		sentry.Flush(2 * time.Second)
	}

	log.Info("sats-fiat bot stopped")
}
