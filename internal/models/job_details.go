package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// JobDetails is the raw job posting captured by the extension / UI.
// Satu record aktif per user: unique index di user_id + upsert.
type JobDetails struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	URL      string `gorm:"type:text" json:"url"`
	HTML     string `gorm:"type:text;not null" json:"-"`
	Platform string `gorm:"type:varchar(30)" json:"platform"`
	JobID    string `gorm:"type:varchar(30)" json:"job_id"`

	// hasil ekstraksi terakhir (AnalizedUpworkJobData), null sebelum pipeline jalan
	Analyzed datatypes.JSON `json:"analyzed,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
