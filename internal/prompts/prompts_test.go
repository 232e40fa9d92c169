package prompts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbeddedPromptsParse(t *testing.T) {
	s, err := Load(nil)
	require.NoError(t, err)
	for _, name := range required {
		_, ok := s.prompts[name]
		require.True(t, ok, "missing %s", name)
	}
}

func TestRenderAnalysisWithContext(t *testing.T) {
	s := MustDefault()
	out, err := s.Render(Analysis, AnalysisData{
		Content: "The report was written by me.",
		Persona: &PersonaData{
			Goals:           []string{"academic", "concise"},
			ExperienceLevel: "beginner",
			FocusAreas:      []string{"clarity"},
			PreferredTone:   "gentle",
		},
		HistoricalPatterns: []string{"Overuses passive voice"},
	})
	require.NoError(t, err)
	require.False(t, out.Quick)
	require.Contains(t, out.User, "The report was written by me.")
	require.Contains(t, out.User, "- Goals: academic, concise")
	require.Contains(t, out.User, "- Experience Level: beginner")
	require.Contains(t, out.User, "- Overuses passive voice")
	require.Contains(t, out.System, "writing coach")
}

func TestRenderAnalysisWithoutContext(t *testing.T) {
	out, err := MustDefault().Render(Analysis, AnalysisData{Content: "Hi."})
	require.NoError(t, err)
	require.NotContains(t, out.User, "WRITER PROFILE")
	require.NotContains(t, out.User, "HISTORICAL PATTERNS")
}

func TestRenderQuickPrompts(t *testing.T) {
	s := MustDefault()
	for _, name := range []Name{QuickCheck, VocabularyExtract} {
		out, err := s.Render(name, ContentData{Content: "Some text"})
		require.NoError(t, err)
		require.True(t, out.Quick)
		require.Contains(t, out.User, `"Some text"`)
	}
}

func TestParseRejectsIncompleteSet(t *testing.T) {
	_, err := Parse([]byte("version: 1\nprompts:\n  - name: analysis\n    system: x\n    user: y\n"))
	require.ErrorContains(t, err, "missing prompt")

	_, err = Parse([]byte("prompts:\n  - name: analysis\n    system: '{{'\n    user: y\n"))
	require.Error(t, err)
}
