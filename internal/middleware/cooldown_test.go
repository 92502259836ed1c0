package middleware

import (
	"testing"
	"time"
)

func TestCooldownAllow(t *testing.T) {
	c := &cooldownState{
		interval: 3 * time.Second,
		lastSeen: make(map[int64]time.Time),
	}

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if !c.allow(1, now) {
		t.Fatal("first message should pass")
	}
	if c.allow(1, now.Add(time.Second)) {
		t.Error("message inside the interval should be dropped")
	}
	if !c.allow(2, now.Add(time.Second)) {
		t.Error("another chat should not share the cooldown")
	}
	if !c.allow(1, now.Add(3*time.Second)) {
		t.Error("message after the interval should pass")
	}
	if c.allow(1, now.Add(3*time.Second+time.Millisecond)) {
		t.Error("allowed message should restart the cooldown")
	}
}
