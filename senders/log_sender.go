package senders

import (
	"context"

	"github.com/google/uuid"
	"github.com/urbansetu/pricewatch/lib/models"
	"github.com/urbansetu/pricewatch/senders/email"
)

// logSender writes alerts to the log instead of delivering them.
type logSender struct {
	base
}

func (l *logSender) SendPriceDropAlert(ctx context.Context, recipient string, alert *models.PriceDropAlert) (string, error) {
	ef := &email.PriceDropEmailFormat{Alert: alert}
	id := uuid.NewString()
	l.log.Sugar().Infow(
		"Price drop alert (not delivered)",
		"message_id", id,
		"recipient", recipient,
		"subject", ef.Subject(),
		"listing_id", alert.ListingID,
		"drop_percentage", alert.DropPercentage,
	)
	return id, nil
}
