package upwork

import "errors"

type JobType string

const (
	JobTypeHourly JobType = "Hourly"
	JobTypeFixed  JobType = "Fixed-Price"
)

type HourlyRate struct {
	Min string `json:"min,omitempty"`
	Max string `json:"max,omitempty"`
}

type JobDetailsData struct {
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Type             JobType     `json:"type,omitempty"`
	ProjectLength    string      `json:"projectLength,omitempty"`
	ExperienceLevel  string      `json:"experienceLevel,omitempty"`
	HourlyRate       *HourlyRate `json:"hourlyRate,omitempty"`
	Skills           []string    `json:"skills,omitempty"`
	ConnectsRequired string      `json:"connectsRequired,omitempty"`
}

type ClientInfo struct {
	ClientName      string `json:"clientName"`
	Location        string `json:"location,omitempty"`
	City            string `json:"city,omitempty"`
	Rating          string `json:"rating,omitempty"`
	Reviews         string `json:"reviews,omitempty"`
	JobsPosted      string `json:"jobsPosted,omitempty"`
	HireRate        string `json:"hireRate,omitempty"`
	TotalSpent      string `json:"totalSpent,omitempty"`
	MemberSince     string `json:"memberSince,omitempty"`
	PaymentVerified *bool  `json:"paymentVerified,omitempty"`
	PhoneVerified   *bool  `json:"phoneVerified,omitempty"`
}

// AnalizedUpworkJobData is one extraction result. Title and description are
// the only fields a well-formed result must carry; everything else is
// best-effort. A new extraction produces a new instance, never a mutation.
type AnalizedUpworkJobData struct {
	JobDetails JobDetailsData `json:"jobDetails"`
	ClientInfo *ClientInfo    `json:"clientInfo,omitempty"`
}

var ErrMissingRequired = errors.New("extraction result missing title or description")

func (d *AnalizedUpworkJobData) Validate() error {
	if d.JobDetails.Title == "" || d.JobDetails.Description == "" {
		return ErrMissingRequired
	}
	return nil
}
