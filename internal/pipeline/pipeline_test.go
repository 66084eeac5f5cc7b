package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/models"
	"github.com/Windi-Fikriyansyah/proposal_be_ai/internal/upwork"
)

type fakeDetails struct {
	record   *models.JobDetails
	fetchErr error
	analyzed []byte
	saveErr  error
}

func (f *fakeDetails) Fetch(ctx context.Context, id, userID uuid.UUID) (*models.JobDetails, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.record, nil
}

func (f *fakeDetails) SaveAnalyzed(ctx context.Context, id uuid.UUID, analyzed []byte) error {
	f.analyzed = analyzed
	return f.saveErr
}

type fakeAnalyzer struct {
	data      *upwork.AnalizedUpworkJobData
	err       error
	started   chan struct{}
	startOnce sync.Once
	release   chan struct{}
}

func (f *fakeAnalyzer) AnalyzeJobHTML(ctx context.Context, html string) (*upwork.AnalizedUpworkJobData, error) {
	if f.started != nil {
		f.startOnce.Do(func() { close(f.started) })
	}
	if f.release != nil {
		<-f.release
	}
	return f.data, f.err
}

type memPhaseStore struct {
	mu     sync.Mutex
	phases []PhaseEvent
}

func (m *memPhaseStore) Set(ctx context.Context, id uuid.UUID, ev PhaseEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phases = append(m.phases, ev)
	return nil
}

func (m *memPhaseStore) Get(ctx context.Context, id uuid.UUID) (*PhaseEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.phases) == 0 {
		return nil, nil
	}
	ev := m.phases[len(m.phases)-1]
	return &ev, nil
}

func (m *memPhaseStore) seen() []Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Phase, 0, len(m.phases))
	for _, ev := range m.phases {
		out = append(out, ev.Phase)
	}
	return out
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []interface{}
}

func (n *recordingNotifier) SendToUser(userID uuid.UUID, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, data)
}

func analyzedFixture() *upwork.AnalizedUpworkJobData {
	return &upwork.AnalizedUpworkJobData{
		JobDetails: upwork.JobDetailsData{Title: "Go Dev", Description: "Build an API"},
		ClientInfo: &upwork.ClientInfo{ClientName: "Acme"},
	}
}

func TestRunnerSuccessPath(t *testing.T) {
	details := &fakeDetails{record: &models.JobDetails{ID: uuid.New(), HTML: "<body>job</body>"}}
	status := &memPhaseStore{}
	hub := &recordingNotifier{}
	r := NewRunner(details, &fakeAnalyzer{data: analyzedFixture()}, status, hub)

	err := r.Run(context.Background(), uuid.New(), details.record.ID)
	require.NoError(t, err)

	assert.Equal(t, []Phase{PhaseFetchJobDetails, PhaseAnalizingJob, PhaseGeneratingProposal}, status.seen())
	assert.JSONEq(t,
		`{"jobDetails":{"title":"Go Dev","description":"Build an API"},"clientInfo":{"clientName":"Acme"}}`,
		string(details.analyzed))

	// event terakhir bawa flattened items, urutan tiga pertama terjaga
	last := status.phases[len(status.phases)-1]
	require.GreaterOrEqual(t, len(last.Items), 3)
	assert.Equal(t, upwork.FlattenedItem{"client_name": "Acme"}, last.Items[0])
	assert.Equal(t, upwork.FlattenedItem{"job_title": "Go Dev"}, last.Items[1])

	assert.Len(t, hub.events, 3)
}

func TestRunnerFetchFailureIsTerminalError(t *testing.T) {
	details := &fakeDetails{fetchErr: errors.New("record not found")}
	status := &memPhaseStore{}
	r := NewRunner(details, &fakeAnalyzer{data: analyzedFixture()}, status, &recordingNotifier{})

	err := r.Run(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, []Phase{PhaseFetchJobDetails, PhaseError}, status.seen())

	last := status.phases[len(status.phases)-1]
	assert.Equal(t, "failed to fetch job details", last.Error)
}

func TestRunnerAnalyzeFailureIsTerminalError(t *testing.T) {
	details := &fakeDetails{record: &models.JobDetails{ID: uuid.New(), HTML: "<body>x</body>"}}
	status := &memPhaseStore{}
	r := NewRunner(details, &fakeAnalyzer{err: errors.New("boom")}, status, &recordingNotifier{})

	err := r.Run(context.Background(), uuid.New(), details.record.ID)
	require.Error(t, err)
	assert.Equal(t, []Phase{PhaseFetchJobDetails, PhaseAnalizingJob, PhaseError}, status.seen())
}

func TestRunnerSingleFlight(t *testing.T) {
	details := &fakeDetails{record: &models.JobDetails{ID: uuid.New(), HTML: "<body>x</body>"}}
	analyzer := &fakeAnalyzer{
		data:    analyzedFixture(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := NewRunner(details, analyzer, &memPhaseStore{}, &recordingNotifier{})

	userID := uuid.New()
	require.True(t, r.Start(userID, details.record.ID))

	select {
	case <-analyzer.started:
	case <-time.After(2 * time.Second):
		t.Fatal("run never reached the analyzer")
	}

	// run kedua untuk record yang sama ditolak selama masih jalan
	assert.False(t, r.Start(userID, details.record.ID))
	close(analyzer.release)

	require.Eventually(t, func() bool {
		return r.Start(userID, details.record.ID)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRunnerMarkReady(t *testing.T) {
	status := &memPhaseStore{}
	r := NewRunner(&fakeDetails{}, &fakeAnalyzer{}, status, &recordingNotifier{})

	id := uuid.New()
	r.MarkReady(context.Background(), uuid.New(), id)

	ev, err := status.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, PhaseReady, ev.Phase)
}
