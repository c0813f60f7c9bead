// Package promo implements the announcement resolution and discount
// application rules of the storefront. Everything here is pure: callers
// fetch announcements and category links themselves and pass the clock in.
package promo

import (
	"time"

	"github.com/Ssnnee/theo-afrique-website/internal/domain"
)

// Eligible reports whether the announcement can be in effect at now.
// Both window boundaries are inclusive; the activation flag overrides the
// window. An inverted window (EndDate before StartDate) is never eligible.
func Eligible(a *domain.Announcement, now time.Time) bool {
	if !a.IsActive {
		return false
	}
	return !a.StartDate.After(now) && !now.After(a.EndDate)
}

// ResolveActive selects the single announcement in effect at now, or nil
// when none is eligible. Among eligible announcements the highest Priority
// wins; equal priorities are broken by ascending ID so the result does not
// depend on storage iteration order.
func ResolveActive(now time.Time, announcements []domain.Announcement) *domain.Announcement {
	var winner *domain.Announcement
	for i := range announcements {
		a := &announcements[i]
		if !Eligible(a, now) {
			continue
		}
		if winner == nil ||
			a.Priority > winner.Priority ||
			(a.Priority == winner.Priority && a.ID < winner.ID) {
			winner = a
		}
	}
	return winner
}
