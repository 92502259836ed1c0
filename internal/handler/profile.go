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
	"github.com/set-night/cryptopulse/internal/quota"
)

func (h *Handler) handleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}
	chatID := update.Message.Chat.ID
	now := time.Now().UTC()

	limits := h.quotaService.Limits()
	tier := quota.ResolveTier(user, now)
	remaining := quota.Remaining(user, now, limits)

	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 *Профиль %s*\n\n", user.DisplayName())

	if tier == quota.TierPremium {
		sb.WriteString("⭐ Тариф: премиум\n")
		if user.PremiumUntil != nil {
			fmt.Fprintf(&sb, "Действует до: %s\n", user.PremiumUntil.Format("02.01.2006"))
		}
	} else {
		sb.WriteString("Тариф: бесплатный\n")
	}
	fmt.Fprintf(&sb, "Осталось анализов сегодня: %d из %d\n", remaining, limits.ForTier(tier))

	analyses, err := h.userService.RecentAnalyses(ctx, user.ID, config.ProfileHistoryLimit)
	if err != nil {
		slog.Error("list analyses", "error", err, "user_id", user.ID)
	}
	if len(analyses) > 0 {
		sb.WriteString("\n📜 *Последние анализы:*\n")
		for _, a := range analyses {
			fmt.Fprintf(&sb, "• %s — %s\n", a.Symbol, a.CreatedAt.Format("02.01 15:04"))
		}
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      sb.String(),
		ParseMode: models.ParseModeMarkdown,
	})
}
