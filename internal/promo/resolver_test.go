package promo

import (
	"testing"
	"time"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ann(id int64, priority int, active bool, start, end time.Time) domain.Announcement {
	return domain.Announcement{
		ID:            id,
		Title:         "test",
		Type:          domain.AnnouncementTypeSale,
		DiscountType:  domain.DiscountTypePercentage,
		DiscountValue: 10,
		StartDate:     start,
		EndDate:       end,
		IsActive:      active,
		Scope:         domain.ScopeGlobal,
		Priority:      priority,
	}
}

func TestEligible(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		name   string
		a      domain.Announcement
		wanted bool
	}{
		{"inside window", ann(1, 0, true, testNow.Add(-day), testNow.Add(day)), true},
		{"starts exactly now", ann(1, 0, true, testNow, testNow.Add(day)), true},
		{"ends exactly now", ann(1, 0, true, testNow.Add(-day), testNow), true},
		{"not started", ann(1, 0, true, testNow.Add(time.Second), testNow.Add(day)), false},
		{"already ended", ann(1, 0, true, testNow.Add(-day), testNow.Add(-time.Second)), false},
		{"kill switch off", ann(1, 0, false, testNow.Add(-day), testNow.Add(day)), false},
		{"inverted window", ann(1, 0, true, testNow.Add(day), testNow.Add(-day)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Eligible(&tt.a, testNow); got != tt.wanted {
				t.Fatalf("Eligible() = %v, want %v", got, tt.wanted)
			}
		})
	}
}

func TestResolveActiveEmpty(t *testing.T) {
	if got := ResolveActive(testNow, nil); got != nil {
		t.Fatalf("expected nil for empty input, got %+v", got)
	}
	if got := ResolveActive(testNow, []domain.Announcement{}); got != nil {
		t.Fatalf("expected nil for empty slice, got %+v", got)
	}
}

func TestResolveActiveNoneEligible(t *testing.T) {
	day := 24 * time.Hour
	anns := []domain.Announcement{
		ann(1, 10, false, testNow.Add(-day), testNow.Add(day)),
		ann(2, 20, true, testNow.Add(day), testNow.Add(2*day)),
	}
	if got := ResolveActive(testNow, anns); got != nil {
		t.Fatalf("expected nil, got id=%d", got.ID)
	}
}

func TestResolveActiveHighestPriorityWins(t *testing.T) {
	day := 24 * time.Hour
	low := ann(1, 5, true, testNow.Add(-day), testNow.Add(day))
	high := ann(2, 10, true, testNow.Add(-day), testNow.Add(day))

	got := ResolveActive(testNow, []domain.Announcement{low, high})
	if got == nil || got.ID != 2 {
		t.Fatalf("expected id=2 to win, got %+v", got)
	}

	// Input order must not matter.
	got = ResolveActive(testNow, []domain.Announcement{high, low})
	if got == nil || got.ID != 2 {
		t.Fatalf("expected id=2 to win regardless of order, got %+v", got)
	}
}

func TestResolveActiveEqualPriorityTieBreak(t *testing.T) {
	day := 24 * time.Hour
	a := ann(7, 10, true, testNow.Add(-day), testNow.Add(day))
	b := ann(3, 10, true, testNow.Add(-day), testNow.Add(day))

	// Lowest ID wins on equal priority, independent of slice order.
	for _, anns := range [][]domain.Announcement{{a, b}, {b, a}} {
		got := ResolveActive(testNow, anns)
		if got == nil || got.ID != 3 {
			t.Fatalf("expected id=3 on tie, got %+v", got)
		}
	}
}

func TestResolveActiveIgnoresExpiredHigherPriority(t *testing.T) {
	day := 24 * time.Hour
	expired := ann(1, 100, true, testNow.Add(-3*day), testNow.Add(-day))
	current := ann(2, 1, true, testNow.Add(-day), testNow.Add(day))

	got := ResolveActive(testNow, []domain.Announcement{expired, current})
	if got == nil || got.ID != 2 {
		t.Fatalf("expected the in-window announcement, got %+v", got)
	}
}
