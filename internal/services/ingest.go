package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/writemate-backend/internal/data/db"
	"github.com/yungbote/writemate-backend/internal/data/repos"
	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/observability"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

const (
	IngestStepAnnotations     = "annotations"
	IngestStepPatterns        = "patterns"
	IngestStepProgressMetric  = "progress_metric"
	IngestStepAnalysisHistory = "analysis_history"
	IngestStepDocumentStatus  = "document_status"
)

type IngestInput struct {
	DocumentID  uuid.UUID
	SessionID   uuid.UUID
	Annotations []AnnotationDraft
	Scores      ScoresDraft
	Patterns    []PatternDraft
	RawResponse json.RawMessage
	ModelUsed   string
	TokensUsed  int
}

// AnalysisIngestor persists one provider result. Steps run in a fixed order without a
// surrounding transaction; the first failure stops the run and earlier writes stay.
type AnalysisIngestor interface {
	Ingest(dbc dbctx.Context, in IngestInput) error
}

// IngestStepError names the step that stopped an ingest.
type IngestStepError struct {
	Step string
	Err  error
}

func (e *IngestStepError) Error() string { return fmt.Sprintf("ingest step %s: %v", e.Step, e.Err) }
func (e *IngestStepError) Unwrap() error { return e.Err }

type ingestStep struct {
	name string
	run  func(dbc dbctx.Context, in *IngestInput) error
}

type analysisIngestor struct {
	log         *logger.Logger
	documents   repos.DocumentRepo
	annotations repos.AnnotationRepo
	patterns    repos.PatternRepo
	metrics     repos.ProgressMetricRepo
	history     repos.AnalysisHistoryRepo
	now         func() time.Time
}

func NewAnalysisIngestor(
	baseLog *logger.Logger,
	documents repos.DocumentRepo,
	annotations repos.AnnotationRepo,
	patterns repos.PatternRepo,
	metrics repos.ProgressMetricRepo,
	history repos.AnalysisHistoryRepo,
) AnalysisIngestor {
	return &analysisIngestor{
		log:         baseLog.With("service", "AnalysisIngestor"),
		documents:   documents,
		annotations: annotations,
		patterns:    patterns,
		metrics:     metrics,
		history:     history,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *analysisIngestor) steps() []ingestStep {
	return []ingestStep{
		{name: IngestStepAnnotations, run: s.saveAnnotations},
		{name: IngestStepPatterns, run: s.upsertPatterns},
		{name: IngestStepProgressMetric, run: s.saveProgressMetric},
		{name: IngestStepAnalysisHistory, run: s.saveHistory},
		{name: IngestStepDocumentStatus, run: s.markAnalyzed},
	}
}

func (s *analysisIngestor) Ingest(dbc dbctx.Context, in IngestInput) error {
	ctx, span := observability.StartSpan(dbc.Context(), "AnalysisIngestor.Ingest")
	dbc = dbc.WithContext(ctx)
	var err error
	defer func() { observability.EndSpan(span, err) }()

	metrics := observability.Current()
	for _, step := range s.steps() {
		start := time.Now()
		stepErr := step.run(dbc, &in)
		metrics.ObserveIngestStep(step.name, stepErr, time.Since(start))
		if stepErr != nil {
			s.log.Error("Ingest step failed",
				"step", step.name,
				"document_id", in.DocumentID,
				"error", stepErr,
			)
			err = &IngestStepError{Step: step.name, Err: stepErr}
			return err
		}
	}
	s.log.Info("Analysis ingested",
		"document_id", in.DocumentID,
		"annotations", len(in.Annotations),
		"patterns", len(in.Patterns),
		"tokens_used", in.TokensUsed,
	)
	return nil
}

func (s *analysisIngestor) saveAnnotations(dbc dbctx.Context, in *IngestInput) error {
	if len(in.Annotations) == 0 {
		return nil
	}
	rows := make([]*types.Annotation, 0, len(in.Annotations))
	for _, a := range in.Annotations {
		rows = append(rows, &types.Annotation{
			DocumentID:       in.DocumentID,
			StartOffset:      a.StartOffset,
			EndOffset:        a.EndOffset,
			Category:         a.Category,
			Severity:         a.Severity,
			Message:          a.Message,
			Suggestion:       a.Suggestion,
			RewrittenVersion: a.RewrittenVersion,
			Principle:        a.Principle,
		})
	}
	_, err := s.annotations.CreateBulk(dbc, rows)
	return err
}

func (s *analysisIngestor) upsertPatterns(dbc dbctx.Context, in *IngestInput) error {
	for _, p := range in.Patterns {
		if err := s.upsertPattern(dbc, in.SessionID, p); err != nil {
			return fmt.Errorf("pattern %q: %w", p.PatternType, err)
		}
	}
	return nil
}

// upsertPattern increments an existing (session, type) row or creates it. Losing an insert race
// to a concurrent ingest falls back to the increment.
func (s *analysisIngestor) upsertPattern(dbc dbctx.Context, sessionID uuid.UUID, p PatternDraft) error {
	now := s.now()
	existing, err := s.patterns.GetBySessionAndType(dbc, sessionID, p.PatternType)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.patterns.IncrementOccurrence(dbc, existing.ID, now)
	}

	_, err = s.patterns.Create(dbc, &types.Pattern{
		SessionID:        sessionID,
		PatternType:      p.PatternType,
		Description:      p.Description,
		OccurrenceCount:  1,
		LastOccurrenceAt: now,
	})
	if err == nil || !db.IsUniqueViolation(err) {
		return err
	}

	s.log.Debug("Pattern created concurrently, incrementing instead", "pattern_type", p.PatternType)
	existing, err = s.patterns.GetBySessionAndType(dbc, sessionID, p.PatternType)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("pattern %q after unique violation: %w", p.PatternType, apperrors.ErrNotFound)
	}
	return s.patterns.IncrementOccurrence(dbc, existing.ID, now)
}

func (s *analysisIngestor) saveProgressMetric(dbc dbctx.Context, in *IngestInput) error {
	_, err := s.metrics.Create(dbc, &types.ProgressMetric{
		SessionID:       in.SessionID,
		DocumentID:      in.DocumentID,
		GrammarScore:    in.Scores.Grammar,
		ClarityScore:    in.Scores.Clarity,
		VocabularyScore: in.Scores.Voice,
		OverallScore:    in.Scores.Overall,
	})
	return err
}

func (s *analysisIngestor) saveHistory(dbc dbctx.Context, in *IngestInput) error {
	_, err := s.history.Create(dbc, &types.AnalysisHistory{
		DocumentID:  in.DocumentID,
		RawResponse: datatypes.JSON(in.RawResponse),
		ModelUsed:   in.ModelUsed,
		TokensUsed:  in.TokensUsed,
	})
	return err
}

func (s *analysisIngestor) markAnalyzed(dbc dbctx.Context, in *IngestInput) error {
	return s.documents.UpdateStatus(dbc, in.DocumentID, types.DocumentStatusAnalyzed)
}
