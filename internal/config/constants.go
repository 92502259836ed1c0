package config

import "time"

const (
	// Daily bar window fed into the indicator engine
	DefaultWindow    = 30
	DefaultTimeframe = "1day"

	// RSI lookback
	RSIPeriod = 14

	// Per-chat cooldown between messages
	MessageCooldown = 3 * time.Second

	// External call timeouts
	MarketDataTimeout = 20 * time.Second
	AIRequestTimeout  = 90 * time.Second
	NewsTimeout       = 15 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Symbol input validation
	MaxSymbolLen = 10

	// Test premium grant duration
	TestPremiumDays = 30

	// Subscription plan pricing (RUB), presentation only
	PremiumPrice30d     = 500.0
	ExtraAnalysesPrice  = 100.0
	ExtraAnalysesAmount = 10

	// Headlines pulled into the premium prompt
	MaxNewsHeadlines = 8

	// Profile history depth
	ProfileHistoryLimit = 5

	// Top symbols lookback for stats
	TopSymbolsDays  = 7
	TopSymbolsLimit = 10
)
