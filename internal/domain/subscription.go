package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionPlan string

const (
	PlanPremium30d    SubscriptionPlan = "premium_30d"
	PlanExtraAnalyses SubscriptionPlan = "analyses_10"
)

type SubscriptionStatus string

const (
	SubscriptionPending     SubscriptionStatus = "pending"
	SubscriptionActive      SubscriptionStatus = "active"
	SubscriptionTestGranted SubscriptionStatus = "test_granted"
	SubscriptionRevoked     SubscriptionStatus = "revoked"
)

// SubscriptionEvent is one row of the append-only payment audit trail. Real
// settlement is not implemented; status transitions come from the test
// activation commands only.
type SubscriptionEvent struct {
	ID        int64
	UserID    int64
	PaymentID string
	Plan      SubscriptionPlan
	Amount    decimal.Decimal
	Status    SubscriptionStatus
	CreatedAt time.Time
}
