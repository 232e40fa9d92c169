package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/writemate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/writemate-backend/internal/domain"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/prompts"
)

const analysisReply = `{
  "annotations": [
    {"start_offset": 4, "end_offset": 9, "category": "style", "severity": "info",
     "message": "Weak verb", "suggestion": "Use a precise verb", "rewritten_version": "The cat lounged.", "principle": "Specific verbs"}
  ],
  "scores": {"grammar": 91, "clarity": 84, "voice": 66, "overall": 78},
  "patterns": [{"pattern_type": "weak_verbs", "description": "Relies on generic verbs"}],
  "vocabulary_suggestions": [{"word": "lounged", "definition": "lay lazily", "part_of_speech": "verb", "example_sentence": "She lounged.", "replaces": "sat"}],
  "summary": "Clear and short."
}`

func newTestLLM(t *testing.T, client *fakeClient) FeedbackLLM {
	t.Helper()
	return NewFeedbackLLM(testutil.Logger(t), client, prompts.MustDefault(), "main-model", "quick-model")
}

func TestAnalyzeDecodesProviderOutput(t *testing.T) {
	client := &fakeClient{replies: []string{analysisReply}, tokens: 1234}
	llm := newTestLLM(t, client)

	persona := &types.Persona{
		Goals:           []string{"publish a novel"},
		ExperienceLevel: "advanced",
		FocusAreas:      []string{"voice"},
		PreferredTone:   "direct",
	}
	res, tokens, err := llm.Analyze(context.Background(), "The cat sat.", persona, []string{"Relies on generic verbs"})
	require.NoError(t, err)
	require.Equal(t, 1234, tokens)
	require.Equal(t, "main-model", llm.Model())

	require.Len(t, res.Annotations, 1)
	require.Equal(t, "Weak verb", res.Annotations[0].Message)
	require.Equal(t, "Specific verbs", *res.Annotations[0].Principle)
	require.Equal(t, ScoresDraft{Grammar: 91, Clarity: 84, Voice: 66, Overall: 78}, res.Scores)
	require.Equal(t, []PatternDraft{{PatternType: "weak_verbs", Description: "Relies on generic verbs"}}, res.Patterns)
	require.Equal(t, "sat", *res.VocabularySuggestions[0].Replaces)
	require.JSONEq(t, analysisReply, string(res.Raw))

	calls := client.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, "main-model", calls[0].Model)
	require.Contains(t, calls[0].User, "The cat sat.")
	require.Contains(t, calls[0].User, "WRITER PROFILE")
	require.Contains(t, calls[0].User, "Goals: publish a novel")
	require.Contains(t, calls[0].User, "- Relies on generic verbs")
}

func TestAnalyzeWithoutContextOmitsOptionalSections(t *testing.T) {
	client := &fakeClient{replies: []string{`{"annotations": [], "patterns": []}`}}
	res, _, err := newTestLLM(t, client).Analyze(context.Background(), "Hello.", nil, nil)
	require.NoError(t, err)
	require.Equal(t, ScoresDraft{}, res.Scores)

	user := client.Calls()[0].User
	require.NotContains(t, user, "WRITER PROFILE")
	require.NotContains(t, user, "HISTORICAL PATTERNS")
}

func TestAnalyzeFailuresAreUpstream(t *testing.T) {
	_, _, err := newTestLLM(t, &fakeClient{err: errors.New("connection reset")}).Analyze(context.Background(), "x", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrUpstream)

	_, _, err = newTestLLM(t, &fakeClient{replies: []string{`{"scores": "high"}`}}).Analyze(context.Background(), "x", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestQuickCheckUsesQuickModel(t *testing.T) {
	client := &fakeClient{replies: []string{`{"has_issues": false}`}}
	res, err := newTestLLM(t, client).QuickCheck(context.Background(), "Fine text.")
	require.NoError(t, err)
	require.False(t, res.HasIssues)
	require.NotNil(t, res.Issues)
	require.Equal(t, "quick-model", client.Calls()[0].Model)
}

func TestFeedbackLLMModelFallsBackToClientDefault(t *testing.T) {
	llm := NewFeedbackLLM(testutil.Logger(t), &fakeClient{}, prompts.MustDefault(), " ", "")
	require.Equal(t, "default-model", llm.Model())
}

func TestExtractVocabulary(t *testing.T) {
	client := &fakeClient{replies: []string{`{"words": [{"word": "laconic", "definition": "brief", "part_of_speech": "adjective", "example_sentence": "A laconic reply."}]}`}}
	words, err := newTestLLM(t, client).ExtractVocabulary(context.Background(), "He said little.")
	require.NoError(t, err)
	require.Len(t, words, 1)
	require.Equal(t, "laconic", words[0].Word)
	require.Nil(t, words[0].Replaces)
}

func TestDecodeVocabularyShapes(t *testing.T) {
	bare, err := decodeVocabulary([]byte(` [{"word": "terse"}]`))
	require.NoError(t, err)
	require.Equal(t, "terse", bare[0].Word)

	legacy, err := decodeVocabulary([]byte(`{"vocabulary": [{"word": "pithy"}]}`))
	require.NoError(t, err)
	require.Equal(t, "pithy", legacy[0].Word)

	empty, err := decodeVocabulary([]byte(`{}`))
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	_, err = decodeVocabulary([]byte(`"words"`))
	require.Error(t, err)
}
