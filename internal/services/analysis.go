package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/writemate-backend/internal/data/repos"
	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/observability"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
	"github.com/yungbote/writemate-backend/internal/realtime"
	"github.com/yungbote/writemate-backend/internal/realtime/bus"
)

type AnalyzeInput struct {
	DocumentID uuid.UUID
	// Content is the text sent to the provider. Blank falls back to the stored document.
	Content string
	// Persona and HistoricalPatterns override what is stored for the session when set.
	Persona            *types.Persona
	HistoricalPatterns []string
}

// AnalysisService runs the full analyze flow: load context, call the provider, ingest.
type AnalysisService interface {
	Analyze(dbc dbctx.Context, in AnalyzeInput) (*AnalysisResult, error)
	QuickCheck(ctx context.Context, content string) (*QuickCheckResult, error)
	ExtractVocabulary(ctx context.Context, content string) ([]VocabSuggestion, error)
}

type analysisService struct {
	log       *logger.Logger
	documents repos.DocumentRepo
	patterns  repos.PatternRepo
	personas  repos.PersonaRepo
	llm       FeedbackLLM
	ingestor  AnalysisIngestor
	events    bus.Bus
}

func NewAnalysisService(
	baseLog *logger.Logger,
	documents repos.DocumentRepo,
	patterns repos.PatternRepo,
	personas repos.PersonaRepo,
	llm FeedbackLLM,
	ingestor AnalysisIngestor,
	events bus.Bus,
) AnalysisService {
	if events == nil {
		events = bus.NewNoopBus()
	}
	return &analysisService{
		log:       baseLog.With("service", "AnalysisService"),
		documents: documents,
		patterns:  patterns,
		personas:  personas,
		llm:       llm,
		ingestor:  ingestor,
		events:    events,
	}
}

func (s *analysisService) Analyze(dbc dbctx.Context, in AnalyzeInput) (*AnalysisResult, error) {
	ctx, span := observability.StartSpan(dbc.Context(), "AnalysisService.Analyze")
	dbc = dbc.WithContext(ctx)
	var err error
	defer func() { observability.EndSpan(span, err) }()

	doc, err := s.documents.GetByID(dbc, in.DocumentID)
	if err != nil {
		return nil, err
	}

	persona := in.Persona
	history := in.HistoricalPatterns
	g, gctx := errgroup.WithContext(ctx)
	gdbc := dbc.WithContext(gctx)
	if persona == nil {
		g.Go(func() error {
			p, err := s.personas.GetBySession(gdbc, doc.SessionID)
			if err != nil {
				return err
			}
			persona = p
			return nil
		})
	}
	if len(history) == 0 {
		g.Go(func() error {
			rows, err := s.patterns.ListBySession(gdbc, doc.SessionID)
			if err != nil {
				return err
			}
			history = patternDescriptions(rows)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	content := in.Content
	if strings.TrimSpace(content) == "" {
		content = doc.Content
	}
	s.log.Info("Analyzing document",
		"document_id", doc.ID,
		"content", content,
		"has_persona", persona != nil,
		"historical_patterns", len(history),
	)

	result, tokens, err := s.llm.Analyze(ctx, content, persona, history)
	if err != nil {
		return nil, err
	}

	err = s.ingestor.Ingest(dbc, IngestInput{
		DocumentID:  doc.ID,
		SessionID:   doc.SessionID,
		Annotations: result.Annotations,
		Scores:      result.Scores,
		Patterns:    result.Patterns,
		RawResponse: result.Raw,
		ModelUsed:   s.llm.Model(),
		TokensUsed:  tokens,
	})
	if err != nil {
		return nil, err
	}

	docID := doc.ID
	pubErr := s.events.Publish(ctx, realtime.Event{
		Type:       realtime.EventAnalysisCompleted,
		SessionID:  doc.SessionID,
		DocumentID: &docID,
		Data: map[string]any{
			"scores":      result.Scores,
			"annotations": len(result.Annotations),
			"patterns":    len(result.Patterns),
		},
	})
	observability.Current().IncEventPublished(realtime.EventAnalysisCompleted, pubErr)
	if pubErr != nil {
		s.log.Warn("Publish analysis.completed failed", "document_id", doc.ID, "error", pubErr)
	}
	return result, nil
}

func (s *analysisService) QuickCheck(ctx context.Context, content string) (*QuickCheckResult, error) {
	return s.llm.QuickCheck(ctx, content)
}

func (s *analysisService) ExtractVocabulary(ctx context.Context, content string) ([]VocabSuggestion, error) {
	return s.llm.ExtractVocabulary(ctx, content)
}

func patternDescriptions(rows []*types.Pattern) []string {
	out := make([]string, 0, len(rows))
	for _, p := range rows {
		out = append(out, p.Description)
	}
	return out
}
