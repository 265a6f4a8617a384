package models

import (
	"errors"
	"math"
)

// PriceDrop describes how far a watched listing has fallen since it was
// added to the watchlist.
type PriceDrop struct {
	OriginalPrice  float64 `json:"originalPrice"`
	CurrentPrice   float64 `json:"currentPrice"`
	DropAmount     float64 `json:"dropAmount"`
	DropPercentage int     `json:"dropPercentage"`
}

func NewPriceDrop(original, current float64) PriceDrop {
	amount := original - current
	return PriceDrop{
		OriginalPrice:  original,
		CurrentPrice:   current,
		DropAmount:     amount,
		DropPercentage: int(math.Round(amount / original * 100)),
	}
}

func (d *PriceDrop) Validate() error {
	if d.OriginalPrice <= 0 {
		return errors.New("priceDropDetails.originalPrice must be a positive number")
	}
	if d.CurrentPrice <= 0 {
		return errors.New("priceDropDetails.currentPrice must be a positive number")
	}
	if d.CurrentPrice >= d.OriginalPrice {
		return errors.New("priceDropDetails.currentPrice must be lower than originalPrice")
	}
	return nil
}

// Dispatch is the outcome of a successfully sent alert.
type Dispatch struct {
	MessageID string `json:"messageId"`
	Recipient string `json:"recipient"`
	ListingID uint   `json:"listingId,omitempty"`
}
