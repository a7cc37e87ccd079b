package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessModel mirrors the 'businesses' table. OwnerID references users.id (UUID).
type BusinessModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessName string    `gorm:"type:varchar(100);unique;not null"`
	City         string    `gorm:"type:varchar(100)"`
	Region       string    `gorm:"type:varchar(100)"`
	Country      string    `gorm:"type:varchar(100)"`
	Description  string    `gorm:"type:text"`
	Logo         string    `gorm:"type:varchar(255)"`
	OwnerID      uuid.UUID `gorm:"type:uuid;unique;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner    *UserModel     `gorm:"foreignKey:OwnerID;references:ID"`
	Products []ProductModel `gorm:"foreignKey:BusinessID"`
}

// TableName explicitly sets the table name for GORM.
func (BusinessModel) TableName() string {
	return "businesses"
}
