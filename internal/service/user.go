package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/repository"
)

type UserService struct {
	store *repository.Store
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{store: store}
}

// FindOrCreate registers the Telegram user on first contact. The second
// return value reports whether the user was just created.
func (s *UserService) FindOrCreate(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, bool, error) {
	user, err := s.store.GetUserByTelegramID(ctx, telegramID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	user, err = s.store.CreateUser(ctx, telegramID, username, firstName, lastName)
	if err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}

func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return s.store.GetUserByTelegramID(ctx, telegramID)
}

func (s *UserService) UpdateInfo(ctx context.Context, userID int64, username, firstName, lastName string) error {
	return s.store.UpdateUserInfo(ctx, userID, username, firstName, lastName)
}

func (s *UserService) RecentAnalyses(ctx context.Context, userID int64, limit int) ([]domain.Analysis, error) {
	return s.store.ListAnalyses(ctx, userID, limit)
}
