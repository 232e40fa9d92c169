package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/writemate-backend/internal/data/repos"
	"github.com/yungbote/writemate-backend/internal/data/repos/testutil"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
	"github.com/yungbote/writemate-backend/internal/platform/openai"
	"github.com/yungbote/writemate-backend/internal/realtime"
)

type fixture struct {
	db  *gorm.DB
	log *logger.Logger

	sessions    repos.SessionRepo
	documents   repos.DocumentRepo
	annotations repos.AnnotationRepo
	patterns    repos.PatternRepo
	metrics     repos.ProgressMetricRepo
	history     repos.AnalysisHistoryRepo
	personas    repos.PersonaRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return &fixture{
		db:          db,
		log:         log,
		sessions:    repos.NewSessionRepo(db, log),
		documents:   repos.NewDocumentRepo(db, log),
		annotations: repos.NewAnnotationRepo(db, log),
		patterns:    repos.NewPatternRepo(db, log),
		metrics:     repos.NewProgressMetricRepo(db, log),
		history:     repos.NewAnalysisHistoryRepo(db, log),
		personas:    repos.NewPersonaRepo(db, log),
	}
}

func (f *fixture) ingestor() AnalysisIngestor {
	return NewAnalysisIngestor(f.log, f.documents, f.annotations, f.patterns, f.metrics, f.history)
}

func (f *fixture) mastery(events *recordingBus) PatternMastery {
	if events == nil {
		return NewPatternMastery(f.log, f.patterns, f.documents, f.annotations, nil, nil)
	}
	return NewPatternMastery(f.log, f.patterns, f.documents, f.annotations, nil, events)
}

type fakeCall struct {
	Model  string
	System string
	User   string
}

// fakeClient answers every call with the next queued reply; the last reply repeats.
type fakeClient struct {
	mu      sync.Mutex
	replies []string
	tokens  int
	err     error
	calls   []fakeCall
}

func (c *fakeClient) GenerateJSON(_ context.Context, model, system, user string) (*openai.JSONResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, fakeCall{Model: model, System: system, User: user})
	if c.err != nil {
		return nil, c.err
	}
	if len(c.replies) == 0 {
		return nil, errors.New("no reply queued")
	}
	text := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	return &openai.JSONResult{Text: text, Model: model, TotalTokens: c.tokens}, nil
}

func (c *fakeClient) DefaultModel() string { return "default-model" }

func (c *fakeClient) Calls() []fakeCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]fakeCall(nil), c.calls...)
}

type recordingBus struct {
	mu     sync.Mutex
	err    error
	events []realtime.Event
}

func (b *recordingBus) Publish(_ context.Context, evt realtime.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
	return b.err
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) Types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

func strPtr(s string) *string { return &s }
