package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Cooldown returns middleware that drops messages arriving faster than the
// interval per chat. Callback queries pass through untouched.
func Cooldown(interval time.Duration) bot.Middleware {
	c := &cooldownState{
		interval: interval,
		lastSeen: make(map[int64]time.Time),
	}
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if update.Message == nil {
				next(ctx, b, update)
				return
			}

			chatID := update.Message.Chat.ID
			if !c.allow(chatID, time.Now()) {
				b.SendMessage(ctx, &bot.SendMessageParams{
					ChatID: chatID,
					Text:   "⏳ Слишком часто. Подождите пару секунд.",
				})
				return
			}

			next(ctx, b, update)
		}
	}
}

type cooldownState struct {
	mu       sync.Mutex
	interval time.Duration
	lastSeen map[int64]time.Time
}

func (c *cooldownState) allow(chatID int64, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.lastSeen[chatID]; ok && now.Sub(last) < c.interval {
		return false
	}
	c.lastSeen[chatID] = now
	return true
}
