package services

import "encoding/json"

// AnnotationDraft is one annotation as returned by the provider, before it is stored.
type AnnotationDraft struct {
	StartOffset      int     `json:"start_offset"`
	EndOffset        int     `json:"end_offset"`
	Category         string  `json:"category"`
	Severity         string  `json:"severity"`
	Message          string  `json:"message"`
	Suggestion       *string `json:"suggestion,omitempty"`
	RewrittenVersion *string `json:"rewritten_version,omitempty"`
	Principle        *string `json:"principle,omitempty"`
}

// ScoresDraft carries the provider's four scores. Voice is stored as the vocabulary score.
type ScoresDraft struct {
	Grammar float64 `json:"grammar"`
	Clarity float64 `json:"clarity"`
	Voice   float64 `json:"voice"`
	Overall float64 `json:"overall"`
}

type PatternDraft struct {
	PatternType string `json:"pattern_type"`
	Description string `json:"description"`
}

type VocabSuggestion struct {
	Word            string  `json:"word"`
	Definition      string  `json:"definition"`
	PartOfSpeech    string  `json:"part_of_speech"`
	ExampleSentence string  `json:"example_sentence"`
	Replaces        *string `json:"replaces,omitempty"`
}

type AnalysisResult struct {
	Annotations           []AnnotationDraft `json:"annotations"`
	Scores                ScoresDraft       `json:"scores"`
	Patterns              []PatternDraft    `json:"patterns"`
	VocabularySuggestions []VocabSuggestion `json:"vocabulary_suggestions"`
	Summary               string            `json:"summary"`

	// Raw is the provider's JSON exactly as received.
	Raw json.RawMessage `json:"-"`
}

type QuickCheckIssue struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type QuickCheckResult struct {
	HasIssues bool              `json:"has_issues"`
	Issues    []QuickCheckIssue `json:"issues"`
}

type ProgressComparison struct {
	Improvement   float64  `json:"improvement"`
	AreasImproved []string `json:"areas_improved"`
	AreasToFocus  []string `json:"areas_to_focus"`
}
