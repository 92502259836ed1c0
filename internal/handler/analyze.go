package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/middleware"
	"github.com/set-night/cryptopulse/internal/service"
	"github.com/set-night/cryptopulse/internal/telegram"
)

func (h *Handler) handleAnalyze(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	// "/analyze BTC" runs straight away, bare "/analyze" asks for a symbol
	parts := strings.Fields(update.Message.Text)
	if len(parts) > 1 {
		h.runAnalysis(ctx, b, chatID, parts[1])
		return
	}

	h.setAwaiting(chatID, true)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "📊 Отправьте тикер криптовалюты, например: BTC, ETH, SOL",
		ReplyMarkup: telegram.InlineKeyboard(
			telegram.ButtonRow(telegram.InlineButton("Отмена", "cancel_analyze")),
		),
	})
}

func (h *Handler) handleCancelAnalyze(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.answerCallback(ctx, b, update)
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return
	}
	msg := update.CallbackQuery.Message.Message
	h.setAwaiting(msg.Chat.ID, false)
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
	})
}

func (h *Handler) runAnalysis(ctx context.Context, b *bot.Bot, chatID int64, symbol string) {
	user := middleware.GetUser(ctx)
	if user == nil {
		return
	}

	symbol = strings.TrimSpace(symbol)
	if !service.ValidateSymbol(symbol) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "❌ Некорректный тикер. Отправьте /analyze и укажите монету, например BTC.",
		})
		return
	}

	status, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   fmt.Sprintf("🔍 Анализирую %s...", strings.ToUpper(symbol)),
	})
	if err != nil {
		slog.Error("send status message", "error", err)
	}

	stopTyping := telegram.StartTyping(ctx, b, chatID)
	res, err := h.analysisService.Request(ctx, user, symbol, time.Now().UTC())
	stopTyping()

	if status != nil {
		b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: status.ID,
		})
	}

	if err != nil {
		h.sendAnalysisError(ctx, b, chatID, err, res)
		return
	}

	text := res.Text + fmt.Sprintf(
		"\n\n_Осталось анализов сегодня: %d из %d_",
		res.Decision.Remaining, res.Decision.Limit,
	)
	if err := telegram.SendLongMessage(ctx, b, chatID, text, nil); err != nil {
		slog.Error("send analysis", "error", err, "chat_id", chatID)
	}
}

func (h *Handler) sendAnalysisError(ctx context.Context, b *bot.Bot, chatID int64, err error, res *service.Result) {
	var text string
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		text = "🚫 Лимит анализов на сегодня исчерпан."
		if res != nil {
			text = fmt.Sprintf("🚫 Лимит анализов на сегодня исчерпан (%d из %d).", res.Decision.Used, res.Decision.Limit)
		}
		text += "\n\nЛимит обновится в полночь (UTC). Премиум даёт " +
			fmt.Sprintf("%d анализов в день — /subscribe", h.cfg.PremiumAnalysesPerDay)
	case errors.Is(err, domain.ErrSymbolNotFound):
		text = "❌ Монета не найдена. Проверьте тикер и попробуйте ещё раз."
	case errors.Is(err, domain.ErrInsufficientData):
		text = "❌ Недостаточно исторических данных по этой монете."
	case errors.Is(err, domain.ErrDataUnavailable):
		text = "⚠️ Источник рыночных данных временно недоступен. Попробуйте позже."
	case errors.Is(err, domain.ErrAIRateLimited):
		text = "⚠️ AI-модель перегружена. Подождите минуту и попробуйте снова."
	case errors.Is(err, domain.ErrAIUnavailable):
		text = "⚠️ AI-сервис временно недоступен. Попробуйте позже."
	default:
		slog.Error("analysis failed", "error", err, "chat_id", chatID)
		text = "⚠️ Что-то пошло не так. Попробуйте позже."
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
}
