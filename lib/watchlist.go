package lib

import (
	"context"
	"errors"
	"time"

	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type watchlist struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

// ScanWatchlist walks every watchlist entry in id order, with user and listing
// preloaded, and hands each batch to fn. Entries whose user or listing is gone
// come through with a nil association.
func (svc *watchlist) ScanWatchlist(ctx context.Context, fn func(models.WatchlistEntries) error) error {
	batchSize := svc.cfg.Database.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	var entries models.WatchlistEntries
	tx := svc.db.WithContext(ctx).
		Preload("User").
		Preload("Listing").
		FindInBatches(&entries, batchSize, func(tx *gorm.DB, batch int) error {
			return fn(entries)
		})
	return tx.Error
}

func (svc *watchlist) AddToWatchlist(ctx context.Context, userID, listingID uint) (entry *models.WatchlistEntry, created bool, err error) {
	if _, err := svc.findUser(ctx, userID); err != nil {
		return nil, false, err
	}
	listing, err := svc.findListing(ctx, listingID)
	if err != nil {
		return nil, false, err
	}

	entry = &models.WatchlistEntry{
		UserID:              userID,
		ListingID:           listingID,
		EffectivePriceAtAdd: listing.EffectivePrice(),
		AddedAt:             time.Now().UTC(),
	}
	tx := svc.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if err := tx.Error; err != nil {
		return nil, false, err
	}

	if tx.RowsAffected == 0 {
		// Already watched, the originally recorded price stays.
		entry, err = svc.findWatchlistEntry(ctx, userID, listingID)
		if err != nil {
			return nil, false, err
		}
		entry.Listing = listing
		return entry, false, nil
	}

	entry.Listing = listing
	svc.log.Sugar().Infow("Listing added to watchlist",
		"user_id", userID, "listing_id", listingID, "price_at_add", entry.EffectivePriceAtAdd)
	return entry, true, nil
}

func (svc *watchlist) ListWatchlist(ctx context.Context, userID uint) (models.WatchlistEntries, error) {
	var entries models.WatchlistEntries
	tx := svc.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Listing").
		Order("added_at desc, id desc").
		Find(&entries)
	if err := tx.Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (svc *watchlist) RemoveFromWatchlist(ctx context.Context, userID, listingID uint) error {
	tx := svc.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Unscoped().
		Delete(&models.WatchlistEntry{})
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return ErrWatchlistEntryNotFound
	}
	return nil
}

func (svc *watchlist) findUser(ctx context.Context, userID uint) (*models.User, error) {
	user := &models.User{}
	return user, notFoundAs(svc.db.WithContext(ctx).First(user, userID).Error, ErrUserNotFound)
}

func (svc *watchlist) findListing(ctx context.Context, listingID uint) (*models.Listing, error) {
	listing := &models.Listing{}
	return listing, notFoundAs(svc.db.WithContext(ctx).First(listing, listingID).Error, ErrListingNotFound)
}

func (svc *watchlist) findWatchlistEntry(ctx context.Context, userID, listingID uint) (*models.WatchlistEntry, error) {
	entry := &models.WatchlistEntry{}
	tx := svc.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(entry)
	return entry, notFoundAs(tx.Error, ErrWatchlistEntryNotFound)
}

func notFoundAs(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
