package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, h.handleHelp)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/analyze", bot.MatchTypePrefix, h.handleAnalyze)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/profile", bot.MatchTypePrefix, h.handleProfile)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/subscribe", bot.MatchTypePrefix, h.handleSubscribe)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/activate_premium_test", bot.MatchTypePrefix, h.handleActivatePremiumTest)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/deactivate_premium_test", bot.MatchTypePrefix, h.handleDeactivatePremiumTest)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypePrefix, h.handleStats)

	// Callbacks
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cancel_analyze", bot.MatchTypeExact, h.handleCancelAnalyze)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "subscribe_premium_30", bot.MatchTypeExact, h.handleBuyPremium)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "buy_analyses_10", bot.MatchTypeExact, h.handleBuyAnalyses)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "cancel_subscribe", bot.MatchTypeExact, h.handleCancelSubscribe)
}

// HandleText routes plain text messages: a chat waiting for a symbol after
// /analyze gets the analysis flow, everything else gets a hint.
func (h *Handler) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.isAwaiting(chatID) {
		h.setAwaiting(chatID, false)
		h.runAnalysis(ctx, b, chatID, update.Message.Text)
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Используйте /analyze для анализа криптовалюты или /help для списка команд.",
	})
}

func (h *Handler) answerCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery != nil {
		b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}
