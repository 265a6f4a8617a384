package app

import (
	"time"

	"github.com/urbansetu/pricewatch/lib/models"
)

type WatchlistEntryView struct {
	ID                  uint         `json:"id"`
	UserID              uint         `json:"userId"`
	ListingID           uint         `json:"listingId"`
	EffectivePriceAtAdd float64      `json:"effectivePriceAtAdd"`
	AddedAt             *string      `json:"addedAt"`
	Listing             *ListingView `json:"listing,omitempty"`
}

type ListingView struct {
	ID             uint     `json:"id"`
	Name           string   `json:"name"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Type           string   `json:"type"`
	RegularPrice   float64  `json:"regularPrice"`
	DiscountPrice  float64  `json:"discountPrice"`
	Offer          bool     `json:"offer"`
	EffectivePrice float64  `json:"effectivePrice"`
	ImageURLs      []string `json:"imageUrls"`
}

type AlertLogView struct {
	ID             uint    `json:"id"`
	RunID          string  `json:"runId"`
	Source         string  `json:"source"`
	UserID         uint    `json:"userId"`
	ListingID      uint    `json:"listingId"`
	Recipient      string  `json:"recipient"`
	OriginalPrice  float64 `json:"originalPrice"`
	CurrentPrice   float64 `json:"currentPrice"`
	DropPercentage int     `json:"dropPercentage"`
	Status         string  `json:"status"`
	MessageID      string  `json:"messageId,omitempty"`
	Error          string  `json:"error,omitempty"`
	CreatedAt      *string `json:"createdAt"`
}

func (view WatchlistEntryView) From(entity *models.WatchlistEntry) WatchlistEntryView {
	v := WatchlistEntryView{
		ID:                  entity.ID,
		UserID:              entity.UserID,
		ListingID:           entity.ListingID,
		EffectivePriceAtAdd: entity.EffectivePriceAtAdd,
		AddedAt:             isoformat(entity.AddedAt),
	}
	if entity.Listing != nil {
		listing := ListingView{}.From(entity.Listing)
		v.Listing = &listing
	}
	return v
}

func (view ListingView) From(entity *models.Listing) ListingView {
	return ListingView{
		ID:             entity.ID,
		Name:           entity.Name,
		City:           entity.City,
		State:          entity.State,
		Type:           entity.Type,
		RegularPrice:   entity.RegularPrice,
		DiscountPrice:  entity.DiscountPrice,
		Offer:          entity.Offer,
		EffectivePrice: entity.EffectivePrice(),
		ImageURLs:      entity.ImageURLs,
	}
}

func (view AlertLogView) From(entity models.AlertLog) AlertLogView {
	return AlertLogView{
		ID:             entity.ID,
		RunID:          entity.RunID,
		Source:         entity.Source,
		UserID:         entity.UserID,
		ListingID:      entity.ListingID,
		Recipient:      entity.Recipient,
		OriginalPrice:  entity.OriginalPrice,
		CurrentPrice:   entity.CurrentPrice,
		DropPercentage: entity.DropPercentage,
		Status:         entity.Status,
		MessageID:      entity.MessageID,
		Error:          entity.Error,
		CreatedAt:      isoformat(entity.CreatedAt),
	}
}

type Fromable[Entity any, Repr any] interface {
	From(Entity) Repr
}

func FromMany[T any, U Fromable[T, U]](elems []T) []U {
	out := make([]U, len(elems))
	for i, t := range elems {
		var u U
		out[i] = u.From(t)
	}
	return out
}

func isoformat(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
