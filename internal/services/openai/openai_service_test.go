package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUpstream stands in for the chat-completions endpoint. It records the
// last request body and answers with the configured content.
type fakeUpstream struct {
	lastRequest chatRequest
	content     string
	status      int
}

func newFakeService(t *testing.T, f *fakeUpstream) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastRequest))

		status := f.status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%s},"finish_reason":"stop"}]}`,
			mustJSON(f.content))
	}))
	t.Cleanup(srv.Close)

	return &Service{
		Client:  &http.Client{Timeout: 5 * time.Second},
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: srv.URL,
	}
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestAnalyzeJobHTML(t *testing.T) {
	f := &fakeUpstream{content: `{"jobDetails":{"title":"Go Dev","description":"Build an API","skills":["Go"]},"clientInfo":{"clientName":"Acme","paymentVerified":true}}`}
	s := newFakeService(t, f)

	data, err := s.AnalyzeJobHTML(context.Background(), "<body><h1>Go Dev</h1></body>")
	require.NoError(t, err)

	assert.Equal(t, "Go Dev", data.JobDetails.Title)
	assert.Equal(t, "Build an API", data.JobDetails.Description)
	require.NotNil(t, data.ClientInfo)
	assert.Equal(t, "Acme", data.ClientInfo.ClientName)

	// json mode diminta untuk ekstraksi
	require.NotNil(t, f.lastRequest.ResponseFormat)
	assert.Equal(t, "json_object", f.lastRequest.ResponseFormat.Type)
	assert.Equal(t, "gpt-4o-mini", f.lastRequest.Model)
}

func TestAnalyzeJobHTMLStripsFences(t *testing.T) {
	f := &fakeUpstream{content: "```json\n{\"jobDetails\":{\"title\":\"X\",\"description\":\"Y\"}}\n```"}
	s := newFakeService(t, f)

	data, err := s.AnalyzeJobHTML(context.Background(), "<body>x</body>")
	require.NoError(t, err)
	assert.Equal(t, "X", data.JobDetails.Title)
}

func TestAnalyzeJobHTMLMalformedOutput(t *testing.T) {
	f := &fakeUpstream{content: "sorry, I cannot help with that"}
	s := newFakeService(t, f)

	_, err := s.AnalyzeJobHTML(context.Background(), "<body>x</body>")
	require.Error(t, err)

	var formatErr *UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "sorry, I cannot help with that", formatErr.Raw)
}

func TestAnalyzeJobHTMLMissingRequiredFields(t *testing.T) {
	// valid JSON tapi tanpa title -> tetap format error, bukan hasil setengah jadi
	f := &fakeUpstream{content: `{"jobDetails":{"description":"Y"}}`}
	s := newFakeService(t, f)

	_, err := s.AnalyzeJobHTML(context.Background(), "<body>x</body>")
	var formatErr *UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))
}

func TestAnalyzeJobHTMLEmptyCompletion(t *testing.T) {
	f := &fakeUpstream{content: ""}
	s := newFakeService(t, f)

	_, err := s.AnalyzeJobHTML(context.Background(), "<body>x</body>")
	require.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGenerateProposalRequestShape(t *testing.T) {
	f := &fakeUpstream{content: "I noticed your API needs... Let's hop on a quick call."}
	s := newFakeService(t, f)

	prof := ProfileContext{
		JobTitle: "Backend Engineer",
		Bio:      "Ten years of Go",
		Skills:   []string{"Go", "PostgreSQL"},
		Projects: []ProjectContext{{Title: "Billing API", Description: "Stripe integration"}},
	}

	out, err := s.GenerateProposal(context.Background(), "Need a REST API in Go", prof)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	assert.InDelta(t, 0.7, f.lastRequest.Temperature, 0.0001)
	assert.Equal(t, 1000, f.lastRequest.MaxTokens)
	assert.Nil(t, f.lastRequest.ResponseFormat)

	require.Len(t, f.lastRequest.Messages, 2)
	user := f.lastRequest.Messages[1].Content
	assert.Contains(t, user, "Need a REST API in Go")
	assert.Contains(t, user, "Backend Engineer")
	assert.Contains(t, user, "Billing API")
	assert.Contains(t, user, "Go, PostgreSQL")
}

func TestRefineProposalRequestShape(t *testing.T) {
	f := &fakeUpstream{content: "refined text"}
	s := newFakeService(t, f)

	out, err := s.RefineProposal(context.Background(), "my old draft", "the job")
	require.NoError(t, err)
	assert.Equal(t, "refined text", out)

	assert.InDelta(t, 0.7, f.lastRequest.Temperature, 0.0001)
	assert.Equal(t, 1000, f.lastRequest.MaxTokens)
	user := f.lastRequest.Messages[1].Content
	assert.Contains(t, user, "my old draft")
	assert.Contains(t, user, "the job")
}

func TestCheckProject(t *testing.T) {
	f := &fakeUpstream{content: `{"title":"Billing API","score":60,"problems":["no outcome stated"],"suggestions":["add the measurable result"]}`}
	s := newFakeService(t, f)

	analysis, err := s.CheckProject(context.Background(), ProjectContext{Title: "Billing API", Description: "built a thing"})
	require.NoError(t, err)
	assert.Equal(t, "Billing API", analysis.Title)
	assert.Equal(t, 60, analysis.Score)
	assert.Len(t, analysis.Problems, 1)
}

func TestCompleteUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit_error"}}`)
	}))
	defer srv.Close()

	s := &Service{Client: srv.Client(), APIKey: "k", Model: "m", BaseURL: srv.URL}
	_, err := s.complete(context.Background(), chatRequest{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")

	// ini transport-level failure, bukan format error
	var formatErr *UpstreamFormatError
	assert.False(t, errors.As(err, &formatErr))
}
