package models

import "gorm.io/gorm"

// Listing is a property listing. Zero prices are treated as unset.
type Listing struct {
	gorm.Model
	Name          string
	Description   string
	Type          string // rent or sale
	City          string
	State         string
	RegularPrice  float64
	DiscountPrice float64
	Offer         bool
	ImageURLs     []string `gorm:"serializer:json"`
}

// EffectivePrice is the discount price while an offer is active, else the
// regular price.
func (l *Listing) EffectivePrice() float64 {
	if l.Offer && l.DiscountPrice > 0 {
		return l.DiscountPrice
	}
	return l.RegularPrice
}

func (l *Listing) CoverImage() string {
	if len(l.ImageURLs) == 0 {
		return ""
	}
	return l.ImageURLs[0]
}
