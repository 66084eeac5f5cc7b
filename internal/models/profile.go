package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MaxProfilesPerUser    = 3
	MaxProjectsPerProfile = 4
)

type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	JobTitle string `gorm:"type:varchar(150);not null" json:"job_title"`
	Bio      string `gorm:"type:text" json:"bio"`

	// list of string, contoh: ["Go","React","PostgreSQL"]
	Skills datatypes.JSON `json:"skills"`

	IsDefault bool `gorm:"default:false;index" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Projects []Project `gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
}

type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`

	Title       string `gorm:"type:varchar(150);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	LiveLink    string `gorm:"type:text" json:"live_link"`
	GithubLink  string `gorm:"type:text" json:"github_link"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
