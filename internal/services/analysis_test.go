package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/writemate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/writemate-backend/internal/domain"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/realtime"
	"github.com/yungbote/writemate-backend/internal/realtime/bus"
)

func newTestAnalysis(t *testing.T, f *fixture, client *fakeClient, events *recordingBus) AnalysisService {
	t.Helper()
	var b bus.Bus
	if events != nil {
		b = events
	}
	return NewAnalysisService(f.log, f.documents, f.patterns, f.personas, newTestLLM(t, client), f.ingestor(), b)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.Ctx()
	sessionID := uuid.New()

	doc, err := NewDocumentService(f.log, f.sessions, f.documents).CreateDocument(ctx, sessionID, " Draft ", "The cat sat.")
	require.NoError(t, err)
	require.Equal(t, "Draft", doc.Title)

	_, err = NewSessionService(f.log, f.sessions, f.patterns, f.personas).UpsertPersona(ctx, &types.Persona{
		SessionID: sessionID,
		Goals:     []string{"win a contest"},
	})
	require.NoError(t, err)
	testutil.SeedPattern(t, f.db, sessionID, "weak_verbs", "Relies on generic verbs", 1)

	client := &fakeClient{replies: []string{analysisReply}, tokens: 99}
	events := &recordingBus{}
	res, err := newTestAnalysis(t, f, client, events).Analyze(ctx, AnalyzeInput{DocumentID: doc.ID})
	require.NoError(t, err)
	require.Equal(t, "Clear and short.", res.Summary)

	user := client.Calls()[0].User
	require.Contains(t, user, "The cat sat.", "blank content falls back to the stored document")
	require.Contains(t, user, "Goals: win a contest")
	require.Contains(t, user, "- Relies on generic verbs")

	got, err := f.documents.GetWithAnnotations(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, types.DocumentStatusAnalyzed, got.Status)
	require.Len(t, got.Annotations, 1)

	patterns, err := f.patterns.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	require.Equal(t, 2, patterns[0].OccurrenceCount)

	var hist types.AnalysisHistory
	require.NoError(t, f.db.Where("document_id = ?", doc.ID).First(&hist).Error)
	require.Equal(t, "main-model", hist.ModelUsed)
	require.Equal(t, 99, hist.TokensUsed)

	require.Equal(t, []string{realtime.EventAnalysisCompleted}, events.Types())
	require.Equal(t, doc.ID, *events.events[0].DocumentID)
}

func TestAnalyzeRequestContextOverridesStored(t *testing.T) {
	f := newFixture(t)
	ctx := testutil.Ctx()
	sess := testutil.SeedSession(t, f.db)
	doc := testutil.SeedDocument(t, f.db, sess.ID, "stored text", nowUTC())
	testutil.SeedPattern(t, f.db, sess.ID, "stored", "Stored pattern", 1)

	client := &fakeClient{replies: []string{analysisReply}}
	_, err := newTestAnalysis(t, f, client, nil).Analyze(ctx, AnalyzeInput{
		DocumentID:         doc.ID,
		Content:            "request text",
		Persona:            &types.Persona{ExperienceLevel: "beginner"},
		HistoricalPatterns: []string{"From the request"},
	})
	require.NoError(t, err)

	user := client.Calls()[0].User
	require.Contains(t, user, "request text")
	require.NotContains(t, user, "stored text")
	require.Contains(t, user, "Experience Level: beginner")
	require.Contains(t, user, "- From the request")
	require.NotContains(t, user, "Stored pattern")
}

func TestAnalyzeUnknownDocument(t *testing.T) {
	f := newFixture(t)
	client := &fakeClient{replies: []string{analysisReply}}

	_, err := newTestAnalysis(t, f, client, nil).Analyze(testutil.Ctx(), AnalyzeInput{DocumentID: uuid.New(), Content: "x"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Empty(t, client.Calls())
}

func TestAnalyzeProviderFailureLeavesDocumentPending(t *testing.T) {
	f := newFixture(t)
	sess := testutil.SeedSession(t, f.db)
	doc := testutil.SeedDocument(t, f.db, sess.ID, "text", nowUTC())
	events := &recordingBus{}

	_, err := newTestAnalysis(t, f, &fakeClient{err: errors.New("timeout")}, events).Analyze(testutil.Ctx(), AnalyzeInput{DocumentID: doc.ID})
	require.ErrorIs(t, err, apperrors.ErrUpstream)

	got, err := f.documents.GetByID(testutil.Ctx(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, types.DocumentStatusPending, got.Status)
	require.Empty(t, events.Types())
}

func TestAnalyzePublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	sess := testutil.SeedSession(t, f.db)
	doc := testutil.SeedDocument(t, f.db, sess.ID, "text", nowUTC())
	events := &recordingBus{err: errors.New("redis down")}

	_, err := newTestAnalysis(t, f, &fakeClient{replies: []string{analysisReply}}, events).Analyze(testutil.Ctx(), AnalyzeInput{DocumentID: doc.ID})
	require.NoError(t, err)
	require.Len(t, events.Types(), 1)
}

func TestQuickCheckAndVocabularyPassThrough(t *testing.T) {
	f := newFixture(t)
	client := &fakeClient{replies: []string{
		`{"has_issues": true, "issues": [{"message": "Typo", "severity": "error"}]}`,
		`[{"word": "succinct"}]`,
	}}
	svc := newTestAnalysis(t, f, client, nil)

	qc, err := svc.QuickCheck(context.Background(), "Teh end.")
	require.NoError(t, err)
	require.True(t, qc.HasIssues)
	require.Equal(t, []QuickCheckIssue{{Message: "Typo", Severity: "error"}}, qc.Issues)

	words, err := svc.ExtractVocabulary(context.Background(), "Short.")
	require.NoError(t, err)
	require.Equal(t, "succinct", words[0].Word)
}
