package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. BusinessID references businesses.id (UUID).
type ProductModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name               string    `gorm:"type:varchar(100);not null"`
	Category           string    `gorm:"type:varchar(100);not null"`
	Description        string    `gorm:"type:text"`
	OriginalPrice      float64   `gorm:"not null;check:original_price > 0"`
	NewPrice           float64   `gorm:"not null"`
	PercentageDiscount int       `gorm:"not null"`
	OfferExpiresAt     time.Time
	Image              string    `gorm:"type:varchar(255)"`
	PublishedAt        time.Time `gorm:"autoCreateTime"`
	BusinessID         uuid.UUID `gorm:"type:uuid;not null;index"`

	Business *BusinessModel `gorm:"foreignKey:BusinessID;references:ID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
