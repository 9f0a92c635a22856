package models

import (
	"time"

	"github.com/angelmondragon/storefront/pkg/db/types"
)

// Listing is the persisted catalog row. Position fixes the relevance order.
type Listing struct {
	ID                  string           `gorm:"column:id;primaryKey"`
	Position            int              `gorm:"column:position;not null;index:listings_position_idx"`
	Name                string           `gorm:"column:name;not null"`
	ImageURL            string           `gorm:"column:image_url"`
	Cuisines            types.StringList `gorm:"column:cuisines;type:text;not null"`
	Rating              float64          `gorm:"column:rating;not null"`
	DeliveryLowMinutes  int              `gorm:"column:delivery_low_minutes;not null"`
	DeliveryHighMinutes int              `gorm:"column:delivery_high_minutes;not null"`
	CreatedAt           time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name used by migrations.
func (Listing) TableName() string {
	return "listings"
}
