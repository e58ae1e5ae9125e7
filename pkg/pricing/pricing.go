// Package pricing implements the discount rule shared by the server (cart
// totals, order snapshots) and the storefront client (product detail display).
// Keeping it in one place guarantees both sides agree on how overlapping
// discounts resolve.
package pricing

import (
	"math"
	"time"
)

// Discount is the subset of a discount record that pricing cares about.
type Discount struct {
	Percent   float64
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// InWindow reports whether the discount applies at the given instant:
// the is_active flag is set and start_date <= now <= end_date.
func (d Discount) InWindow(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if now.Before(d.StartDate) {
		return false
	}
	if now.After(d.EndDate) {
		return false
	}
	return true
}

// MaxActivePercent returns the single highest percentage among discounts
// applicable at now, or 0 when none apply. Discounts never stack: two
// simultaneously active discounts of 10% and 20% yield 20%, not 30%.
func MaxActivePercent(discounts []Discount, now time.Time) float64 {
	max := 0.0
	for _, d := range discounts {
		if d.InWindow(now) && d.Percent > max {
			max = d.Percent
		}
	}
	return max
}

// EffectivePrice applies the maximum active discount to price:
// price * (100 - maxPercent) / 100. With no applicable discount the price is
// returned unchanged.
func EffectivePrice(price float64, discounts []Discount, now time.Time) float64 {
	return price * (100 - MaxActivePercent(discounts, now)) / 100
}

// RoundCents rounds a monetary amount to two decimals. Used when amounts are
// persisted (order line snapshots); display formatting is the caller's job.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
