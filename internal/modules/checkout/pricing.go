package checkout

import (
	"time"

	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
)

// ResolveUnitPrice computes the effective unit price for a catalog line.
// A valid offer applies its percentage discount, rounded to the currency
// minor unit; an expired or missing offer leaves the price unchanged.
// Validity is strict: an offer expiring exactly at now does not apply.
func ResolveUnitPrice(unitPrice float64, offer *catalog.Offer, now time.Time) float64 {
	if !offer.ValidAt(now) {
		return unitPrice
	}
	return round2(unitPrice * (1 - offer.DiscountPercentage/100))
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
