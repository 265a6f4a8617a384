package models

import (
	"time"

	"gorm.io/gorm"
)

type WatchlistEntry struct {
	gorm.Model
	UserID              uint `gorm:"uniqueIndex:idx_user_listing"` // Composite index on user & listing
	ListingID           uint `gorm:"uniqueIndex:idx_user_listing;index"`
	EffectivePriceAtAdd float64
	AddedAt             time.Time

	User    *User
	Listing *Listing
}

type WatchlistEntries []*WatchlistEntry

// Orphaned reports whether the joined user or listing is gone.
func (e *WatchlistEntry) Orphaned() bool {
	return e.User == nil || e.Listing == nil
}
