// Package dbtest opens throwaway in-memory databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/urbansetu/pricewatch/lib/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func CreateUser(t testing.TB, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Username: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateListing(t testing.TB, db *gorm.DB, listing models.Listing) *models.Listing {
	t.Helper()
	require.NoError(t, db.Create(&listing).Error)
	return &listing
}

// Watch inserts an entry directly, bypassing price capture.
func Watch(t testing.TB, db *gorm.DB, userID, listingID uint, priceAtAdd float64) *models.WatchlistEntry {
	t.Helper()
	entry := &models.WatchlistEntry{UserID: userID, ListingID: listingID, EffectivePriceAtAdd: priceAtAdd}
	require.NoError(t, db.Create(entry).Error)
	return entry
}
