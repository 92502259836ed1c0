package middleware

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/service"
)

type ctxKey string

const UserKey ctxKey = "user"

// GetUser extracts user from context.
func GetUser(ctx context.Context) *domain.User {
	u, ok := ctx.Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return u
}

// UserLoader returns middleware that registers the sender on first contact
// and loads the user row into context.
func UserLoader(userService *service.UserService) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			var from *models.User
			if update.Message != nil {
				from = update.Message.From
			} else if update.CallbackQuery != nil {
				from = &update.CallbackQuery.From
			}

			if from == nil {
				next(ctx, b, update)
				return
			}

			user, created, err := userService.FindOrCreate(ctx, from.ID, from.Username, from.FirstName, from.LastName)
			if err == nil && user != nil {
				if !created && profileChanged(user, from) {
					if err := userService.UpdateInfo(ctx, user.ID, from.Username, from.FirstName, from.LastName); err == nil {
						user.Username = from.Username
						user.FirstName = from.FirstName
						user.LastName = from.LastName
					}
				}
				ctx = context.WithValue(ctx, UserKey, user)
			}

			next(ctx, b, update)
		}
	}
}

func profileChanged(user *domain.User, from *models.User) bool {
	return user.Username != from.Username ||
		user.FirstName != from.FirstName ||
		user.LastName != from.LastName
}
