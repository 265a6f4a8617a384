package lib

import "github.com/urbansetu/pricewatch/lib/models"

type Comparison int

const (
	NoDrop Comparison = iota
	PriceDropped
	PriceMissing
)

func (c Comparison) String() string {
	switch c {
	case PriceDropped:
		return "dropped"
	case PriceMissing:
		return "missing"
	default:
		return "unchanged"
	}
}

// ComparePrice checks the listing's current effective price against the price
// recorded when the entry was created. Only a strictly lower price is a drop.
func ComparePrice(entry *models.WatchlistEntry) (models.PriceDrop, Comparison) {
	if entry.Listing == nil {
		return models.PriceDrop{}, PriceMissing
	}

	original := entry.EffectivePriceAtAdd
	current := entry.Listing.EffectivePrice()
	if original <= 0 || current <= 0 {
		return models.PriceDrop{}, PriceMissing
	}
	if current >= original {
		return models.PriceDrop{OriginalPrice: original, CurrentPrice: current}, NoDrop
	}
	return models.NewPriceDrop(original, current), PriceDropped
}
