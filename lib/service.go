package lib

import (
	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/senders"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	senders senders.Registry

	*watchlist
	*alerts
}

func NewService(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, db *gorm.DB, senders senders.Registry, reporter senders.SweepReporter) *Service {
	wl := &watchlist{cfg, log, db}
	return &Service{
		cfg, log, db, senders,
		wl,
		&alerts{cfg, log, db, senders, reporter, wl},
	}
}
