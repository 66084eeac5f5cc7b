package models

import (
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	ProposalStatusDraft ProposalStatus = "DRAFT"
	ProposalStatusSent  ProposalStatus = "SENT"
	ProposalStatusWon   ProposalStatus = "WON"
)

// CanTransition reports whether a status change is allowed.
// DRAFT -> SENT -> WON, forward only; WON is terminal.
func (s ProposalStatus) CanTransition(to ProposalStatus) bool {
	rank := map[ProposalStatus]int{
		ProposalStatusDraft: 0,
		ProposalStatusSent:  1,
		ProposalStatusWon:   2,
	}
	from, ok1 := rank[s]
	next, ok2 := rank[to]
	return ok1 && ok2 && next > from
}

type Proposal struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title          string         `gorm:"type:varchar(200)" json:"title"`
	JobDescription string         `gorm:"type:text;not null" json:"job_description"`
	Proposal       string         `gorm:"type:text;not null" json:"proposal"`
	Status         ProposalStatus `gorm:"type:varchar(10);not null;default:'DRAFT';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
