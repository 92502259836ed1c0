package handler

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/cryptopulse/internal/middleware"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	text := fmt.Sprintf(
		"👋 Привет, *%s*!\n\n"+
			"Я — AI-аналитик криптовалютного рынка. Присылаю разбор "+
			"тренда, индикаторов и волатильности по любой монете.\n\n"+
			"📋 *Команды:*\n"+
			"/analyze — Анализ криптовалюты\n"+
			"/profile — Ваш профиль и лимиты\n"+
			"/subscribe — Премиум-подписка\n"+
			"/help — Справка\n\n"+
			"Бесплатно доступно %d анализа в день, с премиумом — %d.",
		user.DisplayName(),
		h.cfg.FreeAnalysesPerDay,
		h.cfg.PremiumAnalysesPerDay,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
}

func (h *Handler) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := "📋 *Команды:*\n" +
		"/analyze — Анализ криптовалюты (например BTC, ETH, SOL)\n" +
		"/profile — Профиль, лимиты и история анализов\n" +
		"/subscribe — Оформить премиум\n\n" +
		"После /analyze просто отправьте тикер монеты.\n\n" +
		"⚠️ Анализ носит информационный характер и не является " +
		"финансовой рекомендацией."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	})
}
