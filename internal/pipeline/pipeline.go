package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/services/openai"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/upwork"
)

// Phase is the orchestration state of one fetch/analyze run.
type Phase string

const (
	PhaseFetchJobDetails    Phase = "fetchJobDetails"
	PhaseAnalizingJob       Phase = "analizingJobDetails"
	PhaseGeneratingProposal Phase = "generatingProposal"
	PhaseReady              Phase = "ready"
	PhaseError              Phase = "error"
)

// PhaseEvent is what the status store holds and the websocket pushes.
type PhaseEvent struct {
	JobDetailsID uuid.UUID              `json:"job_details_id"`
	Phase        Phase                  `json:"phase"`
	Error        string                 `json:"error,omitempty"`
	Items        []upwork.FlattenedItem `json:"items,omitempty"`
	At           time.Time              `json:"at"`
}

type Analyzer interface {
	AnalyzeJobHTML(ctx context.Context, html string) (*upwork.AnalizedUpworkJobData, error)
}

type DetailsStore interface {
	Fetch(ctx context.Context, id, userID uuid.UUID) (*models.JobDetails, error)
	SaveAnalyzed(ctx context.Context, id uuid.UUID, analyzed []byte) error
}

type PhaseStore interface {
	Set(ctx context.Context, jobDetailsID uuid.UUID, ev PhaseEvent) error
	Get(ctx context.Context, jobDetailsID uuid.UUID) (*PhaseEvent, error)
}

type Notifier interface {
	SendToUser(userID uuid.UUID, data interface{})
}

const runTimeout = 2 * time.Minute

// Runner drives the fetch -> analyze -> flatten sequence as an explicit state
// machine. Transitions fire exactly once per async completion; "error" is
// terminal and a new run starts from the beginning.
type Runner struct {
	Details DetailsStore
	AI      Analyzer
	Status  PhaseStore
	Hub     Notifier

	mu     sync.Mutex
	active map[uuid.UUID]bool
}

func NewRunner(details DetailsStore, ai Analyzer, status PhaseStore, hub Notifier) *Runner {
	return &Runner{
		Details: details,
		AI:      ai,
		Status:  status,
		Hub:     hub,
		active:  make(map[uuid.UUID]bool),
	}
}

// Start launches a run in the background. Returns false when a run for the
// same job-details record is already in flight (single-flight).
func (r *Runner) Start(userID, jobDetailsID uuid.UUID) bool {
	r.mu.Lock()
	if r.active[jobDetailsID] {
		r.mu.Unlock()
		return false
	}
	r.active[jobDetailsID] = true
	r.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		defer func() {
			r.mu.Lock()
			delete(r.active, jobDetailsID)
			r.mu.Unlock()
		}()

		if err := r.Run(ctx, userID, jobDetailsID); err != nil {
			log.Printf("[Pipeline] run failed for job %s: %v", jobDetailsID, err)
		}
	}()
	return true
}

// Run executes the full sequence synchronously.
func (r *Runner) Run(ctx context.Context, userID, jobDetailsID uuid.UUID) error {
	r.setPhase(ctx, userID, PhaseEvent{JobDetailsID: jobDetailsID, Phase: PhaseFetchJobDetails})

	det, err := r.Details.Fetch(ctx, jobDetailsID, userID)
	if err != nil {
		r.fail(ctx, userID, jobDetailsID, "failed to fetch job details")
		return err
	}

	r.setPhase(ctx, userID, PhaseEvent{JobDetailsID: jobDetailsID, Phase: PhaseAnalizingJob})

	data, err := r.AI.AnalyzeJobHTML(ctx, det.HTML)
	if err != nil {
		// bedakan "unreachable" dan "returned garbage" di log saja,
		// client cuma dapat phase error
		var formatErr *openai.UpstreamFormatError
		if errors.As(err, &formatErr) {
			log.Printf("[Pipeline] upstream returned malformed extraction for job %s: %v", jobDetailsID, formatErr.Err)
		}
		r.fail(ctx, userID, jobDetailsID, "failed to analyze job details")
		return err
	}

	analyzed, err := json.Marshal(data)
	if err != nil {
		r.fail(ctx, userID, jobDetailsID, "failed to analyze job details")
		return err
	}
	if err := r.Details.SaveAnalyzed(ctx, jobDetailsID, analyzed); err != nil {
		r.fail(ctx, userID, jobDetailsID, "failed to store analysis")
		return err
	}

	// flattened data siap untuk tabel; generate proposal tetap aksi user
	r.setPhase(ctx, userID, PhaseEvent{
		JobDetailsID: jobDetailsID,
		Phase:        PhaseGeneratingProposal,
		Items:        upwork.FlattenJobData(*data),
	})
	return nil
}

// MarkReady is set when the user generates a proposal against the analyzed
// job, the one external action that completes the flow.
func (r *Runner) MarkReady(ctx context.Context, userID, jobDetailsID uuid.UUID) {
	r.setPhase(ctx, userID, PhaseEvent{JobDetailsID: jobDetailsID, Phase: PhaseReady})
}

func (r *Runner) fail(ctx context.Context, userID, jobDetailsID uuid.UUID, msg string) {
	r.setPhase(ctx, userID, PhaseEvent{JobDetailsID: jobDetailsID, Phase: PhaseError, Error: msg})
}

func (r *Runner) setPhase(ctx context.Context, userID uuid.UUID, ev PhaseEvent) {
	ev.At = time.Now()
	if err := r.Status.Set(ctx, ev.JobDetailsID, ev); err != nil {
		log.Printf("[Pipeline] failed to store phase %s for job %s: %v", ev.Phase, ev.JobDetailsID, err)
	}
	if r.Hub != nil {
		r.Hub.SendToUser(userID, ev)
	}
}
