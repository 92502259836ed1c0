package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	cryptopulseroot "github.com/set-night/cryptopulse"
	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/handler"
	"github.com/set-night/cryptopulse/internal/metrics"
	"github.com/set-night/cryptopulse/internal/middleware"
	"github.com/set-night/cryptopulse/internal/quota"
	"github.com/set-night/cryptopulse/internal/repository"
	"github.com/set-night/cryptopulse/internal/service"
	"github.com/set-night/cryptopulse/internal/web"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	migrationsFS, err := fs.Sub(cryptopulseroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.NewStore(pool)
	m := metrics.New(prometheus.DefaultRegisterer)

	limits := quota.Limits{Free: cfg.FreeAnalysesPerDay, Premium: cfg.PremiumAnalysesPerDay}
	userService := service.NewUserService(store)
	quotaService := service.NewQuotaService(pool, store, limits)
	subscriptionService := service.NewSubscriptionService(pool, store)
	marketData := service.NewMarketDataService(cfg)
	aiService := service.NewAIService(cfg)
	newsService := service.NewNewsService()
	statsService := service.NewStatsService(store)
	analysisService := service.NewAnalysisService(quotaService, marketData, aiService, store, newsService, m)

	if cfg.UseMockData {
		slog.Warn("market data mock mode enabled")
	}

	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
			middleware.Cooldown(config.MessageCooldown),
			middleware.UserLoader(userService),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
				return
			}
			h.HandleText(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	h = handler.New(handler.Deps{
		Bot:                 b,
		Cfg:                 cfg,
		UserService:         userService,
		QuotaService:        quotaService,
		SubscriptionService: subscriptionService,
		AnalysisService:     analysisService,
		StatsService:        statsService,
	})
	h.Register()

	srv := web.NewServer(cfg.Port, pool, statsService)
	srv.Start()

	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Stop(shutdownCtx)

	slog.Info("bot stopped gracefully")
}
