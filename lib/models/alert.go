package models

import "time"

// PriceDropAlert is the payload handed to a sender.
type PriceDropAlert struct {
	RecipientName  string
	PropertyName   string
	Description    string
	ImageURL       string
	PropertyType   string
	City           string
	State          string
	ListingID      uint
	ListingURL     string
	WatchlistDate  time.Time
	OriginalPrice  float64
	CurrentPrice   float64
	DropAmount     float64
	DropPercentage int

	RunID string
	Test  bool
}

type AlertResult struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	RunID        string       `json:"runId"`
	TotalEntries int          `json:"totalEntries"`
	SuccessCount int          `json:"successCount"`
	ErrorCount   int          `json:"errorCount"`
	SkippedCount int          `json:"skippedCount"`
	Errors       []AlertError `json:"errors"`
}

type AlertError struct {
	UserEmail string `json:"userEmail"`
	ListingID uint   `json:"listingId"`
	Error     string `json:"error"`
}
