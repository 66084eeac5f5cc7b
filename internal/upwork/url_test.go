package upwork

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJobURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		jobID string
	}{
		{
			name:  "standard job url",
			url:   "https://www.upwork.com/jobs/~021834567890123456",
			jobID: "021834567890123456",
		},
		{
			name:  "exactly ten digits",
			url:   "https://www.upwork.com/jobs/~0123456789",
			jobID: "0123456789",
		},
		{
			name:  "first match wins",
			url:   "https://www.upwork.com/jobs/~1111111111?ref=~2222222222",
			jobID: "1111111111",
		},
		{
			name:  "digits followed by slug",
			url:   "https://www.upwork.com/jobs/Go-developer_~021834567890123456/",
			jobID: "021834567890123456",
		},
		{
			name:  "too few digits",
			url:   "https://www.upwork.com/jobs/~123456789",
			jobID: "",
		},
		{
			name:  "no tilde",
			url:   "https://example.com/jobs/1234567890123",
			jobID: "",
		},
		{
			name:  "empty input",
			url:   "",
			jobID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseJobURL(tt.url)
			assert.Equal(t, "upwork", got.Platform)
			assert.Equal(t, tt.jobID, got.JobID)
		})
	}
}
