package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/observability"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
	"github.com/yungbote/writemate-backend/internal/platform/openai"
	"github.com/yungbote/writemate-backend/internal/prompts"
)

// FeedbackLLM is the writing-feedback provider. Every failure, including output that does not
// decode into the expected shape, is reported as apperrors.ErrUpstream.
type FeedbackLLM interface {
	Analyze(ctx context.Context, content string, persona *types.Persona, historicalPatterns []string) (*AnalysisResult, int, error)
	QuickCheck(ctx context.Context, content string) (*QuickCheckResult, error)
	ExtractVocabulary(ctx context.Context, content string) ([]VocabSuggestion, error)
	Model() string
}

type feedbackLLM struct {
	log        *logger.Logger
	client     openai.Client
	prompts    *prompts.Set
	model      string
	quickModel string
}

func NewFeedbackLLM(baseLog *logger.Logger, client openai.Client, set *prompts.Set, model, quickModel string) FeedbackLLM {
	model = strings.TrimSpace(model)
	if model == "" {
		model = client.DefaultModel()
	}
	quickModel = strings.TrimSpace(quickModel)
	if quickModel == "" {
		quickModel = model
	}
	return &feedbackLLM{
		log:        baseLog.With("service", "FeedbackLLM"),
		client:     client,
		prompts:    set,
		model:      model,
		quickModel: quickModel,
	}
}

func (s *feedbackLLM) Model() string { return s.model }

func (s *feedbackLLM) Analyze(ctx context.Context, content string, persona *types.Persona, historicalPatterns []string) (*AnalysisResult, int, error) {
	ctx, span := observability.StartSpan(ctx, "FeedbackLLM.Analyze")
	var err error
	defer func() { observability.EndSpan(span, err) }()

	data := prompts.AnalysisData{Content: content, HistoricalPatterns: historicalPatterns}
	if persona != nil {
		data.Persona = &prompts.PersonaData{
			Goals:           persona.Goals,
			ExperienceLevel: persona.ExperienceLevel,
			FocusAreas:      persona.FocusAreas,
			PreferredTone:   persona.PreferredTone,
		}
	}
	res, err := s.generate(ctx, prompts.Analysis, data)
	if err != nil {
		return nil, 0, err
	}

	var out AnalysisResult
	if err = json.Unmarshal([]byte(res.Text), &out); err != nil {
		s.log.Warn("Analysis output did not match the expected shape", "error", err, "raw_response", res.Text)
		err = fmt.Errorf("decode analysis: %v: %w", err, apperrors.ErrUpstream)
		return nil, 0, err
	}
	out.Raw = json.RawMessage(res.Text)
	s.log.Debug("Analysis complete",
		"annotations", len(out.Annotations),
		"patterns", len(out.Patterns),
		"tokens_used", res.TotalTokens,
	)
	return &out, res.TotalTokens, nil
}

func (s *feedbackLLM) QuickCheck(ctx context.Context, content string) (*QuickCheckResult, error) {
	res, err := s.generate(ctx, prompts.QuickCheck, prompts.ContentData{Content: content})
	if err != nil {
		return nil, err
	}
	var out QuickCheckResult
	if err := json.Unmarshal([]byte(res.Text), &out); err != nil {
		return nil, fmt.Errorf("decode quick check: %v: %w", err, apperrors.ErrUpstream)
	}
	if out.Issues == nil {
		out.Issues = []QuickCheckIssue{}
	}
	return &out, nil
}

// ExtractVocabulary accepts a bare array or an object holding the list under "words" or "vocabulary".
func (s *feedbackLLM) ExtractVocabulary(ctx context.Context, content string) ([]VocabSuggestion, error) {
	res, err := s.generate(ctx, prompts.VocabularyExtract, prompts.ContentData{Content: content})
	if err != nil {
		return nil, err
	}
	words, err := decodeVocabulary([]byte(res.Text))
	if err != nil {
		return nil, fmt.Errorf("decode vocabulary: %v: %w", err, apperrors.ErrUpstream)
	}
	return words, nil
}

func decodeVocabulary(raw []byte) ([]VocabSuggestion, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var list []VocabSuggestion
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var wrapped struct {
		Words      []VocabSuggestion `json:"words"`
		Vocabulary []VocabSuggestion `json:"vocabulary"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Words != nil {
		return wrapped.Words, nil
	}
	if wrapped.Vocabulary != nil {
		return wrapped.Vocabulary, nil
	}
	return []VocabSuggestion{}, nil
}

func (s *feedbackLLM) generate(ctx context.Context, name prompts.Name, data any) (*openai.JSONResult, error) {
	rendered, err := s.prompts.Render(name, data)
	if err != nil {
		return nil, err
	}
	model := s.model
	if rendered.Quick {
		model = s.quickModel
	}
	res, err := s.client.GenerateJSON(ctx, model, rendered.System, rendered.User)
	if err != nil {
		s.log.Error("LLM call failed", "prompt", string(name), "model", model, "error", err)
		return nil, fmt.Errorf("%s: %v: %w", name, err, apperrors.ErrUpstream)
	}
	return res, nil
}
