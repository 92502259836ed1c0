package handler

import (
	"sync"

	"github.com/go-telegram/bot"

	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/service"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot                 *bot.Bot
	cfg                 *config.Config
	userService         *service.UserService
	quotaService        *service.QuotaService
	subscriptionService *service.SubscriptionService
	analysisService     *service.AnalysisService
	statsService        *service.StatsService

	// chats where /analyze is waiting for a symbol
	mu       sync.Mutex
	awaiting map[int64]bool
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot                 *bot.Bot
	Cfg                 *config.Config
	UserService         *service.UserService
	QuotaService        *service.QuotaService
	SubscriptionService *service.SubscriptionService
	AnalysisService     *service.AnalysisService
	StatsService        *service.StatsService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:                 deps.Bot,
		cfg:                 deps.Cfg,
		userService:         deps.UserService,
		quotaService:        deps.QuotaService,
		subscriptionService: deps.SubscriptionService,
		analysisService:     deps.AnalysisService,
		statsService:        deps.StatsService,
		awaiting:            make(map[int64]bool),
	}
}

func (h *Handler) setAwaiting(chatID int64, v bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if v {
		h.awaiting[chatID] = true
	} else {
		delete(h.awaiting, chatID)
	}
}

func (h *Handler) isAwaiting(chatID int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.awaiting[chatID]
}
