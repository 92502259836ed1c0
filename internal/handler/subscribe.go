package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/middleware"
	"github.com/set-night/cryptopulse/internal/telegram"
)

func (h *Handler) handleSubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := fmt.Sprintf(
		"⭐ *Премиум-подписка*\n\n"+
			"• %d анализов в день вместо %d\n"+
			"• Новостной фон и настроение рынка в каждом анализе\n\n"+
			"💳 Премиум на 30 дней — %.0f₽\n"+
			"📦 Пакет из %d доп. анализов — %.0f₽",
		h.cfg.PremiumAnalysesPerDay,
		h.cfg.FreeAnalysesPerDay,
		config.PremiumPrice30d,
		config.ExtraAnalysesAmount,
		config.ExtraAnalysesPrice,
	)

	kb := telegram.InlineKeyboard(
		telegram.ButtonRow(telegram.InlineButton("⭐ Премиум на 30 дней", "subscribe_premium_30")),
		telegram.ButtonRow(telegram.InlineButton(fmt.Sprintf("📦 %d анализов", config.ExtraAnalysesAmount), "buy_analyses_10")),
		telegram.ButtonRow(telegram.InlineButton("Отмена", "cancel_subscribe")),
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ParseMode:   models.ParseModeMarkdown,
		ReplyMarkup: kb,
	})
}

// Payments are not connected yet: the buy callbacks record intent and answer
// with a stub.
func (h *Handler) handleBuyPremium(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.recordPurchaseIntent(ctx, b, update, domain.PlanPremium30d, config.PremiumPrice30d)
}

func (h *Handler) handleBuyAnalyses(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.recordPurchaseIntent(ctx, b, update, domain.PlanExtraAnalyses, config.ExtraAnalysesPrice)
}

func (h *Handler) recordPurchaseIntent(ctx context.Context, b *bot.Bot, update *models.Update, plan domain.SubscriptionPlan, amount float64) {
	h.answerCallback(ctx, b, update)
	user := middleware.GetUser(ctx)
	if user == nil || update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return
	}
	chatID := update.CallbackQuery.Message.Message.Chat.ID

	if err := h.subscriptionService.RecordPendingPurchase(ctx, user.ID, plan, amount); err != nil {
		slog.Error("record purchase intent", "error", err, "user_id", user.ID)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "🛠 Оплата пока в разработке. Мы сообщим, когда подписка станет доступна!",
	})
}

func (h *Handler) handleCancelSubscribe(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, b, update)
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return
	}
	msg := update.CallbackQuery.Message.Message
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
}
