package lib

import "errors"

var (
	ErrUserNotFound           = errors.New("User not found")
	ErrListingNotFound        = errors.New("Listing not found")
	ErrWatchlistEntryNotFound = errors.New("Watchlist entry not found")
)

// IsNotFound reports whether err is one of the lookup failures above.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrListingNotFound) ||
		errors.Is(err, ErrWatchlistEntryNotFound)
}
