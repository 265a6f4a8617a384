package models

import "gorm.io/gorm"

const (
	AlertStatusSent   = "SENT"
	AlertStatusFailed = "FAILED"

	AlertSourceSweep  = "sweep"
	AlertSourceDirect = "direct"
	AlertSourceTest   = "test"
)

// AlertLog records one dispatch attempt. Nothing in the sweep reads it back.
type AlertLog struct {
	gorm.Model
	RunID          string `gorm:"index"`
	Source         string
	UserID         uint `gorm:"index"`
	ListingID      uint
	Recipient      string
	OriginalPrice  float64
	CurrentPrice   float64
	DropPercentage int
	Status         string
	MessageID      string
	Error          string
}

type AlertLogs []AlertLog
