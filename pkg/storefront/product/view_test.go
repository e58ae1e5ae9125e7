package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aigerim-zh/kshop/pkg/storefront/api"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func activeDiscount(percent float64) api.Discount {
	return api.Discount{
		Percent:   api.Number(percent),
		StartDate: now.AddDate(0, 0, -7),
		EndDate:   now.AddDate(0, 0, 7),
		IsActive:  true,
	}
}

func TestPrice_BasePlusDiffWithSingleDiscount(t *testing.T) {
	album := &api.Album{BasePrice: 20}
	version := &api.Version{PriceDiff: 5}

	got := Price(album, version, []api.Discount{activeDiscount(30)}, now)

	assert.Equal(t, "25.00", got.Original)
	assert.Equal(t, "17.50", got.Final)
	assert.Equal(t, "-30%", got.Badge)
	assert.True(t, got.Discounted)
}

func TestPrice_NoActiveDiscountShowsOriginalOnly(t *testing.T) {
	album := &api.Album{BasePrice: 20}

	expired := activeDiscount(50)
	expired.EndDate = now.AddDate(0, 0, -1)
	disabled := activeDiscount(40)
	disabled.IsActive = false

	got := Price(album, nil, []api.Discount{expired, disabled}, now)

	assert.Equal(t, "20.00", got.Original)
	assert.Empty(t, got.Final)
	assert.Empty(t, got.Badge)
	assert.False(t, got.Discounted)
}

func TestPrice_OverlappingDiscountsNeverStack(t *testing.T) {
	album := &api.Album{BasePrice: 100}

	got := Price(album, nil, []api.Discount{activeDiscount(10), activeDiscount(20)}, now)

	// 20% only: 80.00, not 70.00 (additive) or 72.00 (compounded).
	assert.Equal(t, "80.00", got.Final)
	assert.Equal(t, "-20%", got.Badge)
}

func TestPrice_StringPricesCoerced(t *testing.T) {
	album := &api.Album{BasePrice: api.Number(20)}
	version := &api.Version{PriceDiff: api.Number(5.5)}

	got := Price(album, version, nil, now)

	assert.Equal(t, "25.50", got.Original)
}

func TestPrice_NilVersionUsesBaseAlone(t *testing.T) {
	album := &api.Album{BasePrice: 30}

	got := Price(album, nil, []api.Discount{activeDiscount(25)}, now)

	assert.Equal(t, "30.00", got.Original)
	assert.Equal(t, "22.50", got.Final)
}

func TestPrice_FractionalBadgeKeepsPrecision(t *testing.T) {
	album := &api.Album{BasePrice: 100}

	got := Price(album, nil, []api.Discount{activeDiscount(12.5)}, now)

	assert.Equal(t, "-12.5%", got.Badge)
	assert.Equal(t, "87.50", got.Final)
}
