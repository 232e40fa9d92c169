package domain

import "github.com/yungbote/writemate-backend/internal/domain/feedback"

type WritingSession = feedback.WritingSession
type Document = feedback.Document
type DocumentStatus = feedback.DocumentStatus
type Annotation = feedback.Annotation
type Pattern = feedback.Pattern
type ProgressMetric = feedback.ProgressMetric
type AnalysisHistory = feedback.AnalysisHistory
type Persona = feedback.Persona

const (
	DocumentStatusPending  = feedback.DocumentStatusPending
	DocumentStatusAnalyzed = feedback.DocumentStatusAnalyzed
)

const (
	CategoryStyle     = feedback.CategoryStyle
	CategoryStructure = feedback.CategoryStructure
	CategoryVoice     = feedback.CategoryVoice
	CategoryClarity   = feedback.CategoryClarity
	CategoryImpact    = feedback.CategoryImpact
	CategoryGrammar   = feedback.CategoryGrammar

	SeverityInfo    = feedback.SeverityInfo
	SeverityWarning = feedback.SeverityWarning
	SeverityError   = feedback.SeverityError
)

// Models lists every persisted type, in dependency order, for migrations.
func Models() []interface{} {
	return []interface{}{
		&WritingSession{},
		&Document{},
		&Annotation{},
		&Pattern{},
		&ProgressMetric{},
		&AnalysisHistory{},
		&Persona{},
	}
}
