package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/middleware"
)

// Test premium commands exist so the full pipeline can be exercised without
// a connected payment provider. In non-debug mode they are admin-only.
func (h *Handler) handleActivatePremiumTest(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if !h.cfg.DebugMode && !h.cfg.IsAdmin(user.TelegramID) {
		return
	}

	until, err := h.subscriptionService.GrantTestPremium(ctx, user.ID, config.TestPremiumDays, time.Now().UTC())
	if err != nil {
		slog.Error("grant test premium", "error", err, "user_id", user.ID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ Не удалось активировать премиум. Попробуйте позже.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("⭐ Тестовый премиум активирован до %s!\n\nТеперь доступно %d анализов в день.",
			until.Format("02.01.2006"), h.cfg.PremiumAnalysesPerDay),
	})
}

func (h *Handler) handleDeactivatePremiumTest(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if !h.cfg.DebugMode && !h.cfg.IsAdmin(user.TelegramID) {
		return
	}

	if err := h.subscriptionService.RevokePremium(ctx, user.ID); err != nil {
		slog.Error("revoke premium", "error", err, "user_id", user.ID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "⚠️ Не удалось отключить премиум. Попробуйте позже.",
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Премиум отключён. Действует бесплатный тариф.",
	})
}

func (h *Handler) handleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil || !h.cfg.IsAdmin(user.TelegramID) {
		return
	}
	chatID := update.Message.Chat.ID
	now := time.Now().UTC()

	stats, err := h.statsService.Users(ctx, now)
	if err != nil {
		slog.Error("get user stats", "error", err)
		return
	}

	var sb strings.Builder
	sb.WriteString("📈 *Статистика*\n\n")
	fmt.Fprintf(&sb, "Пользователей: %d\n", stats.TotalUsers)
	fmt.Fprintf(&sb, "Премиум: %d\n", stats.PremiumUsers)
	fmt.Fprintf(&sb, "Активны сегодня: %d\n", stats.ActiveToday)
	fmt.Fprintf(&sb, "Анализов сегодня: %d\n", stats.AnalysesToday)

	top, err := h.statsService.TopSymbols(ctx, now)
	if err != nil {
		slog.Error("top symbols", "error", err)
	}
	if len(top) > 0 {
		fmt.Fprintf(&sb, "\n🔥 *Топ монет за %d дней:*\n", config.TopSymbolsDays)
		for _, s := range top {
			fmt.Fprintf(&sb, "• %s — %d\n", s.Symbol, s.Count)
		}
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdown,
	})
}
