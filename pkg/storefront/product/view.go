// Package product derives the price display for the product detail page.
// Unlike the cart, which trusts the server's per-item numbers, the product
// page computes the effective price locally from the album, the selected
// version, and the separately fetched discount records.
package product

import (
	"fmt"
	"strconv"
	"time"

	"github.com/aigerim-zh/kshop/pkg/pricing"
	"github.com/aigerim-zh/kshop/pkg/storefront/api"
)

// PriceDisplay is the rendered price pair: with an active discount the
// original price shows struck through next to the discounted one and a
// "-N%" badge; otherwise only Original is set.
type PriceDisplay struct {
	Original   string
	Final      string
	Badge      string
	Discounted bool
}

// Price derives the display for an album with a selected version. Both
// values carry two decimals; the badge drops trailing zeros ("-30%", not
// "-30.0%").
func Price(album *api.Album, version *api.Version, discounts []api.Discount, now time.Time) PriceDisplay {
	base := album.BasePrice.Float64()
	if version != nil {
		base += version.PriceDiff.Float64()
	}

	percent := pricing.MaxActivePercent(toPricing(discounts), now)
	if percent <= 0 {
		return PriceDisplay{Original: fmt.Sprintf("%.2f", base)}
	}

	final := base * (100 - percent) / 100
	return PriceDisplay{
		Original:   fmt.Sprintf("%.2f", base),
		Final:      fmt.Sprintf("%.2f", final),
		Badge:      fmt.Sprintf("-%s%%", strconv.FormatFloat(percent, 'f', -1, 64)),
		Discounted: true,
	}
}

func toPricing(discounts []api.Discount) []pricing.Discount {
	out := make([]pricing.Discount, len(discounts))
	for i, d := range discounts {
		out[i] = pricing.Discount{
			Percent:   d.Percent.Float64(),
			StartDate: d.StartDate,
			EndDate:   d.EndDate,
			IsActive:  d.IsActive,
		}
	}
	return out
}
