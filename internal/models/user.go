package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// di-set bersamaan dengan create profile pertama (satu transaksi)
	HasCreatedProfile bool `gorm:"default:false" json:"has_created_profile"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profiles []Profile `gorm:"foreignKey:UserID;references:ID" json:"profiles,omitempty"`
}
