package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingEffectivePrice(t *testing.T) {
	cases := []struct {
		name    string
		listing Listing
		want    float64
	}{
		{"no offer", Listing{RegularPrice: 1_000_000, DiscountPrice: 800_000}, 1_000_000},
		{"active offer", Listing{RegularPrice: 1_000_000, DiscountPrice: 800_000, Offer: true}, 800_000},
		{"offer without discount", Listing{RegularPrice: 1_000_000, Offer: true}, 1_000_000},
		{"nothing set", Listing{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.listing.EffectivePrice())
		})
	}
}

func TestNewPriceDrop(t *testing.T) {
	drop := NewPriceDrop(1_000_000, 800_000)
	assert.Equal(t, 200_000.0, drop.DropAmount)
	assert.Equal(t, 20, drop.DropPercentage)

	// 1/3 of the price rounds to 33, 2/3 rounds up to 67.
	assert.Equal(t, 33, NewPriceDrop(300, 200).DropPercentage)
	assert.Equal(t, 67, NewPriceDrop(300, 100).DropPercentage)
	assert.Equal(t, 1, NewPriceDrop(200, 199).DropPercentage)
}

func TestPriceDropValidate(t *testing.T) {
	assert.NoError(t, (&PriceDrop{OriginalPrice: 10, CurrentPrice: 5}).Validate())
	assert.Error(t, (&PriceDrop{CurrentPrice: 5}).Validate())
	assert.Error(t, (&PriceDrop{OriginalPrice: 10}).Validate())
	assert.Error(t, (&PriceDrop{OriginalPrice: 10, CurrentPrice: 10}).Validate())
	assert.ErrorContains(t, (&PriceDrop{OriginalPrice: 10, CurrentPrice: 11}).Validate(), "lower than originalPrice")
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Asha Rao", (&User{FirstName: "Asha", LastName: "Rao", Username: "asha"}).DisplayName())
	assert.Equal(t, "asha", (&User{Username: "asha", Email: "asha@example.com"}).DisplayName())
	assert.Equal(t, "asha@example.com", (&User{Email: "asha@example.com"}).DisplayName())
}

func TestWatchlistEntryOrphaned(t *testing.T) {
	assert.True(t, (&WatchlistEntry{}).Orphaned())
	assert.True(t, (&WatchlistEntry{User: &User{}}).Orphaned())
	assert.False(t, (&WatchlistEntry{User: &User{}, Listing: &Listing{}}).Orphaned())
}
