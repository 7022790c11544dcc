package ratelimit

import (
	"testing"
	"time"
)

func TestPerMinute_DisabledWhenNonPositive(t *testing.T) {
	t.Parallel()
	for _, n := range []int{0, -1} {
		l := PerMinute(n)
		if l != nil {
			t.Fatalf("PerMinute(%d) = %v, want nil", n, l)
		}
		for i := 0; i < 1000; i++ {
			if !l.Allow() {
				t.Fatalf("nil limiter denied call %d", i)
			}
		}
	}
}

func TestPerMinute_BurstThenDeny(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := PerMinute(3)
	l.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("call %d denied within burst", i)
		}
	}
	if l.Allow() {
		t.Fatal("4th call allowed, want denied")
	}
}

func TestPerMinute_Refills(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	current := base
	l := PerMinute(60)
	l.now = func() time.Time { return current }

	for i := 0; i < 60; i++ {
		l.Allow()
	}
	if l.Allow() {
		t.Fatal("expected bucket to be empty")
	}
	current = base.Add(time.Second)
	if !l.Allow() {
		t.Fatal("expected one token after one second at 60/min")
	}
}
