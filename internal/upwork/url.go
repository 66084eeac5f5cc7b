package upwork

import "regexp"

// Upwork job URLs carry the posting id as "~" + 10..n digits,
// contoh: https://www.upwork.com/jobs/~021834567890123456
var jobIDRe = regexp.MustCompile(`~(\d{10,})`)

type ParsedJobURL struct {
	Platform string `json:"platform"`
	JobID    string `json:"jobId"`
}

// ParseJobURL extracts the platform and numeric job id from a pasted URL.
// JobID is empty when the URL has no tilde-digit run; caller treats that
// as an unsupported/unparsable URL. Only the first match is used.
func ParseJobURL(rawURL string) ParsedJobURL {
	p := ParsedJobURL{Platform: "upwork"}
	if m := jobIDRe.FindStringSubmatch(rawURL); m != nil {
		p.JobID = m[1]
	}
	return p
}
