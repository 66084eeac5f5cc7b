package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/upwork"
)

// ErrEmptyCompletion: API menjawab 200 tapi tanpa konten.
var ErrEmptyCompletion = errors.New("failed to parse completion: empty content")

// UpstreamFormatError means the model answered but the content was not the
// JSON we asked for. Distinct from transport errors so callers can tell
// "service unreachable" from "service returned garbage".
type UpstreamFormatError struct {
	Raw string
	Err error
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("upstream returned malformed content: %v", e.Err)
}

func (e *UpstreamFormatError) Unwrap() error { return e.Err }

type Service struct {
	Client  *http.Client
	APIKey  string
	Model   string
	BaseURL string
}

func NewService(apiKey, model string) *Service {
	baseURL := "https://api.openai.com/v1"
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		baseURL = v
	}

	return &Service{
		Client:  &http.Client{Timeout: 60 * time.Second},
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// complete does one round trip to the chat-completions endpoint and returns
// the single text completion. No retry, no streaming.
func (s *Service) complete(ctx context.Context, req chatRequest) (string, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.BaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Authorization", "Bearer "+s.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	var apiResp chatResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %v", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("openai error: %s", apiResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	return apiResp.Choices[0].Message.Content, nil
}

// stripFences removes markdown code fences kalau model tetap membungkus JSON.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}

// AnalyzeJobHTML sends cleaned job-page HTML to the model and decodes the
// structured extraction result.
func (s *Service) AnalyzeJobHTML(ctx context.Context, html string) (*upwork.AnalizedUpworkJobData, error) {
	cleaned := upwork.CleanHTML(html)

	content, err := s.complete(ctx, chatRequest{
		Model: s.Model,
		Messages: []chatMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: "Extract the job data from this posting:\n\n" + cleaned},
		},
		Temperature:    0.2,
		MaxTokens:      1500,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var data upwork.AnalizedUpworkJobData
	if err := json.Unmarshal([]byte(stripFences(content)), &data); err != nil {
		return nil, &UpstreamFormatError{Raw: content, Err: err}
	}
	if err := data.Validate(); err != nil {
		return nil, &UpstreamFormatError{Raw: content, Err: err}
	}

	return &data, nil
}

// ProfileContext is what the generation prompt knows about the freelancer.
type ProfileContext struct {
	JobTitle string
	Bio      string
	Skills   []string
	Projects []ProjectContext
}

type ProjectContext struct {
	Title       string
	Description string
	LiveLink    string
	GithubLink  string
}

func buildProfileSection(prof ProfileContext) string {
	var sb strings.Builder
	sb.WriteString("FREELANCER PROFILE:\n")
	sb.WriteString("Title: " + prof.JobTitle + "\n")
	sb.WriteString("Skills: " + strings.Join(prof.Skills, ", ") + "\n")
	sb.WriteString("Bio: " + prof.Bio + "\n")
	for i, p := range prof.Projects {
		sb.WriteString(fmt.Sprintf("\nProject %d: %s\n%s\n", i+1, p.Title, p.Description))
		if p.LiveLink != "" {
			sb.WriteString("Live: " + p.LiveLink + "\n")
		}
		if p.GithubLink != "" {
			sb.WriteString("GitHub: " + p.GithubLink + "\n")
		}
	}
	return sb.String()
}

// GenerateProposal writes a fresh AIDA proposal for a job description using
// the freelancer's default profile. temperature 0.7, output capped ~1000 tokens.
func (s *Service) GenerateProposal(ctx context.Context, jobDescription string, prof ProfileContext) (string, error) {
	var sb strings.Builder
	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\n")
	sb.WriteString(buildProfileSection(prof))
	sb.WriteString("\nWrite the proposal now.")

	content, err := s.complete(ctx, chatRequest{
		Model: s.Model,
		Messages: []chatMessage{
			{Role: "system", Content: generateSystemPrompt},
			{Role: "user", Content: sb.String()},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// RefineProposal tightens an existing draft against its job description.
func (s *Service) RefineProposal(ctx context.Context, originalProposal, jobDescription string) (string, error) {
	var sb strings.Builder
	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\nCURRENT PROPOSAL DRAFT:\n")
	sb.WriteString(originalProposal)
	sb.WriteString("\n\nRefine the proposal now.")

	content, err := s.complete(ctx, chatRequest{
		Model: s.Model,
		Messages: []chatMessage{
			{Role: "system", Content: refineSystemPrompt},
			{Role: "user", Content: sb.String()},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// ProjectAnalysis is the completeness verdict for one portfolio project.
type ProjectAnalysis struct {
	Title       string   `json:"title"`
	Score       int      `json:"score"`
	Problems    []string `json:"problems"`
	Suggestions []string `json:"suggestions"`
}

// CheckProject reviews one portfolio project description.
func (s *Service) CheckProject(ctx context.Context, project ProjectContext) (*ProjectAnalysis, error) {
	var sb strings.Builder
	sb.WriteString("PROJECT:\nTitle: " + project.Title + "\n")
	sb.WriteString("Description: " + project.Description + "\n")
	if project.LiveLink != "" {
		sb.WriteString("Live link: " + project.LiveLink + "\n")
	}
	if project.GithubLink != "" {
		sb.WriteString("GitHub link: " + project.GithubLink + "\n")
	}

	content, err := s.complete(ctx, chatRequest{
		Model: s.Model,
		Messages: []chatMessage{
			{Role: "system", Content: projectCheckSystemPrompt},
			{Role: "user", Content: sb.String()},
		},
		Temperature:    0.2,
		MaxTokens:      500,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var analysis ProjectAnalysis
	if err := json.Unmarshal([]byte(stripFences(content)), &analysis); err != nil {
		return nil, &UpstreamFormatError{Raw: content, Err: err}
	}
	return &analysis, nil
}
