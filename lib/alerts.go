package lib

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib/models"
	"github.com/urbansetu/pricewatch/senders"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type alerts struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *gorm.DB
	senders  senders.Registry
	reporter senders.SweepReporter

	watchlist *watchlist
}

// SweepPriceDrops runs one pass over the whole watchlist and sends one alert
// per entry whose listing is now cheaper than when it was watched. Failures of
// single entries are collected in the result. A failure to read the watchlist
// is returned as an error only when no entry was processed yet; otherwise the
// partial result is returned with the abort recorded in its errors.
func (svc *alerts) SweepPriceDrops(ctx context.Context) (*models.AlertResult, error) {
	startTime := time.Now().UTC()
	runID := uuid.NewString()
	log := svc.log.Sugar().With("run_id", runID)

	m := &sweepMetrics{}
	result := &models.AlertResult{RunID: runID, Errors: []models.AlertError{}}

	err := svc.watchlist.ScanWatchlist(ctx, func(batch models.WatchlistEntries) error {
		for _, entry := range batch {
			if alertErr := svc.processEntry(ctx, runID, entry, m); alertErr != nil {
				result.Errors = append(result.Errors, *alertErr)
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("Price drop sweep aborted", "err", err, "processed", m.totalSelected)
		if m.totalSelected == 0 {
			return nil, fmt.Errorf("failed to read watchlist: %w", err)
		}
		result.Errors = append(result.Errors, models.AlertError{Error: fmt.Sprintf("sweep aborted: failed to read watchlist: %s", err)})
	}

	m.fill(result)
	if err != nil {
		result.Success = false
	}
	result.Message = fmt.Sprintf(
		"Processed %d watchlist entries: %d alerts sent, %d failed, %d skipped",
		result.TotalEntries, result.SuccessCount, result.ErrorCount, result.SkippedCount,
	)

	log.Infow(fmt.Sprintf("Processed %d watchlist entries", m.totalSelected), m.logArgs()...)
	elapsed := time.Now().UTC().Sub(startTime)
	log.Infow("Price drop sweep completed", "elapsed_msecs", int(elapsed.Milliseconds()))

	if err := svc.reporter.ReportSweep(context.WithoutCancel(ctx), result); err != nil {
		log.Warnw("Failed to report sweep result", "err", err)
	}
	return result, nil
}

func (svc *alerts) processEntry(ctx context.Context, runID string, entry *models.WatchlistEntry, m *sweepMetrics) (alertErr *models.AlertError) {
	m.totalSelected += 1

	defer func() {
		if r := recover(); r != nil {
			svc.log.Sugar().Errorw("Panic while processing watchlist entry", "entry_id", entry.ID, "panic", r)
			m.errored += 1
			alertErr = &models.AlertError{ListingID: entry.ListingID, Error: fmt.Sprint(r)}
			if entry.User != nil {
				alertErr.UserEmail = entry.User.Email
			}
		}
	}()

	if entry.Orphaned() {
		svc.log.Sugar().Debugw("Skipping orphaned watchlist entry", "entry_id", entry.ID)
		m.orphaned += 1
		return nil
	}

	drop, cmp := ComparePrice(entry)
	switch cmp {
	case PriceMissing:
		m.unpriced += 1
		return nil
	case NoDrop:
		m.unchanged += 1
		return nil
	}

	if _, err := svc.dispatch(ctx, models.AlertSourceSweep, runID, entry, drop); err != nil {
		m.errored += 1
		return &models.AlertError{UserEmail: entry.User.Email, ListingID: entry.ListingID, Error: err.Error()}
	}
	m.sent += 1
	return nil
}

// SendPriceDropAlert sends a single alert for a watched listing with the given
// drop details. The derived drop fields are recomputed from the two prices.
func (svc *alerts) SendPriceDropAlert(ctx context.Context, userID, listingID uint, details models.PriceDrop) (*models.Dispatch, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	user, err := svc.watchlist.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	listing, err := svc.watchlist.findListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	entry, err := svc.watchlist.findWatchlistEntry(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}
	entry.User, entry.Listing = user, listing

	drop := models.NewPriceDrop(details.OriginalPrice, details.CurrentPrice)
	return svc.dispatch(ctx, models.AlertSourceDirect, uuid.NewString(), entry, drop)
}

// SendTestEmail delivers a canned alert so the mail setup can be checked.
func (svc *alerts) SendTestEmail(ctx context.Context, email string) (*models.Dispatch, error) {
	if email == "" {
		return nil, errors.New("Email is required")
	}

	entry := &models.WatchlistEntry{
		EffectivePriceAtAdd: 1_000_000,
		AddedAt:             time.Now().UTC().Add(-7 * 24 * time.Hour),
		User:                &models.User{Email: email, Username: "UrbanSetu user"},
		Listing: &models.Listing{
			Name:          "Test Property - Beautiful 3BHK Apartment",
			Description:   "This is a test property to verify price drop alert emails.",
			Type:          "sale",
			City:          "Mumbai",
			State:         "Maharashtra",
			RegularPrice:  1_000_000,
			DiscountPrice: 800_000,
			Offer:         true,
			ImageURLs:     []string{"https://images.unsplash.com/photo-1560518883-ce09059eeffa?w=800"},
		},
	}
	drop := models.NewPriceDrop(entry.EffectivePriceAtAdd, entry.Listing.EffectivePrice())
	return svc.dispatch(ctx, models.AlertSourceTest, uuid.NewString(), entry, drop)
}

// AlertHistory lists recent dispatch attempts, newest first. A zero userID
// lists attempts for every user.
func (svc *alerts) AlertHistory(ctx context.Context, userID uint, limit int) (models.AlertLogs, error) {
	switch {
	case limit <= 0:
		limit = 100
	case limit > 500:
		limit = 500
	}

	var logs models.AlertLogs
	tx := svc.db.WithContext(ctx).Order("id desc").Limit(limit)
	if userID != 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	if err := tx.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (svc *alerts) dispatch(ctx context.Context, source, runID string, entry *models.WatchlistEntry, drop models.PriceDrop) (*models.Dispatch, error) {
	user, listing := entry.User, entry.Listing

	var (
		id  string
		err error
	)
	if sender, ok := svc.senders[senders.PlatformEmail]; !ok {
		err = fmt.Errorf("unsupported notifier platform: %s", senders.PlatformEmail)
	} else if user.Email == "" {
		err = errors.New("user has no email address")
	} else {
		id, err = sender.SendPriceDropAlert(ctx, user.Email, svc.buildAlert(runID, entry, drop, source == models.AlertSourceTest))
	}

	svc.recordAttempt(ctx, source, runID, entry, drop, id, err)

	if err != nil {
		svc.log.Sugar().Infow("Failed to send price drop alert",
			"run_id", runID, "user_id", user.ID, "listing_id", entry.ListingID, "err", err)
		return nil, fmt.Errorf("failed to send price drop alert: %w", err)
	}
	svc.log.Sugar().Infow("Sent price drop alert to "+user.Email,
		"run_id", runID, "listing_id", listing.ID, "drop_percentage", drop.DropPercentage, "message_id", id)
	return &models.Dispatch{MessageID: id, Recipient: user.Email, ListingID: entry.ListingID}, nil
}

func (svc *alerts) buildAlert(runID string, entry *models.WatchlistEntry, drop models.PriceDrop, test bool) *models.PriceDropAlert {
	listing := entry.Listing
	return &models.PriceDropAlert{
		RecipientName:  entry.User.DisplayName(),
		PropertyName:   listing.Name,
		Description:    listing.Description,
		ImageURL:       listing.CoverImage(),
		PropertyType:   listing.Type,
		City:           listing.City,
		State:          listing.State,
		ListingID:      entry.ListingID,
		ListingURL:     svc.cfg.ListingURL(entry.ListingID),
		WatchlistDate:  entry.AddedAt,
		OriginalPrice:  drop.OriginalPrice,
		CurrentPrice:   drop.CurrentPrice,
		DropAmount:     drop.DropAmount,
		DropPercentage: drop.DropPercentage,
		RunID:          runID,
		Test:           test,
	}
}

func (svc *alerts) recordAttempt(ctx context.Context, source, runID string, entry *models.WatchlistEntry, drop models.PriceDrop, messageID string, sendErr error) {
	if source == models.AlertSourceTest {
		return
	}

	row := &models.AlertLog{
		RunID:          runID,
		Source:         source,
		UserID:         entry.UserID,
		ListingID:      entry.ListingID,
		Recipient:      entry.User.Email,
		OriginalPrice:  drop.OriginalPrice,
		CurrentPrice:   drop.CurrentPrice,
		DropPercentage: drop.DropPercentage,
		Status:         models.AlertStatusSent,
		MessageID:      messageID,
	}
	if sendErr != nil {
		row.Status = models.AlertStatusFailed
		row.Error = sendErr.Error()
	}

	if err := svc.db.WithContext(ctx).Create(row).Error; err != nil {
		svc.log.Sugar().Warnw("Failed to record alert attempt", "run_id", runID, "err", err)
	}
}
