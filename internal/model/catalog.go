package model

import "time"

type VisibilityMode string

const (
	VisibilityPermanent VisibilityMode = "PERMANENT"
	VisibilityDateRange VisibilityMode = "DATE_RANGE"
	VisibilityScheduled VisibilityMode = "SCHEDULED"
)

type Catalog struct {
	ID         string         `gorm:"primaryKey;size:64;not null"`
	ProviderID string         `gorm:"size:64;index;not null"`
	Name       string         `gorm:"size:128;not null"`
	Visibility VisibilityMode `gorm:"size:32;not null"` // PERMANENT, DATE_RANGE, SCHEDULED

	// DATE_RANGE bounds; nil means unbounded on that side.
	StartDate *time.Time
	EndDate   *time.Time

	// SCHEDULED daily window, "HH:MM" wall-clock.
	StartTime string `gorm:"size:8"`
	EndTime   string `gorm:"size:8"`

	// Empty list means visible to every linked school.
	SchoolIDs []string `gorm:"serializer:json"`

	ProductIDs []string `gorm:"serializer:json"`

	// Empty set falls back to DefaultAcceptedMethods.
	AcceptedMethods []PaymentMethod `gorm:"serializer:json"`

	OrderCutoff  string `gorm:"size:8"` // "HH:MM", last moment remote orders are taken
	DeliveryTime string `gorm:"size:8"` // "HH:MM"

	CreatedAt time.Time
	UpdatedAt time.Time
}
