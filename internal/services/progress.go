package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/writemate-backend/internal/data/repos"
	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/observability"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

const (
	// ProgressImprovedDelta is the half-over-half gain that counts as improvement.
	ProgressImprovedDelta = 5.0
	// ProgressFocusScore is the recent average below which a flat dimension needs focus.
	ProgressFocusScore = 70.0
)

// progressDimension is one scored axis, in reporting order.
type progressDimension struct {
	name  string
	score func(*types.ProgressMetric) float64
}

var progressDimensions = []progressDimension{
	{name: "grammar", score: func(m *types.ProgressMetric) float64 { return m.GrammarScore }},
	{name: "clarity", score: func(m *types.ProgressMetric) float64 { return m.ClarityScore }},
	{name: "vocabulary", score: func(m *types.ProgressMetric) float64 { return m.VocabularyScore }},
	{name: "overall", score: func(m *types.ProgressMetric) float64 { return m.OverallScore }},
}

type ProgressComparator interface {
	// CompareProgress compares the older and newer halves of the session's metrics, then runs
	// mastery evaluation for the session.
	CompareProgress(dbc dbctx.Context, sessionID uuid.UUID) (*ProgressComparison, error)
	ListMetrics(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.ProgressMetric, error)
}

type progressComparator struct {
	log     *logger.Logger
	metrics repos.ProgressMetricRepo
	mastery PatternMastery
}

func NewProgressComparator(baseLog *logger.Logger, metrics repos.ProgressMetricRepo, mastery PatternMastery) ProgressComparator {
	return &progressComparator{
		log:     baseLog.With("service", "ProgressComparator"),
		metrics: metrics,
		mastery: mastery,
	}
}

func (s *progressComparator) ListMetrics(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.ProgressMetric, error) {
	return s.metrics.ListBySessionAsc(dbc, sessionID)
}

func (s *progressComparator) CompareProgress(dbc dbctx.Context, sessionID uuid.UUID) (*ProgressComparison, error) {
	rows, err := s.metrics.ListBySessionAsc(dbc, sessionID)
	if err != nil {
		return nil, err
	}
	out := compareHalves(rows)
	if len(rows) < 2 {
		observability.Current().ObserveProgressComparison("neutral", 0)
		return out, nil
	}
	observability.Current().ObserveProgressComparison(progressOutcome(out.Improvement), out.Improvement)

	if _, err := s.mastery.EvaluateMastery(dbc, sessionID); err != nil {
		return nil, fmt.Errorf("evaluate mastery: %w", err)
	}
	return out, nil
}

// compareHalves splits rows at n/2; the later half holds the extra row when n is odd.
func compareHalves(rows []*types.ProgressMetric) *ProgressComparison {
	out := &ProgressComparison{AreasImproved: []string{}, AreasToFocus: []string{}}
	if len(rows) < 2 {
		return out
	}
	mid := len(rows) / 2
	first, second := rows[:mid], rows[mid:]
	for _, dim := range progressDimensions {
		recent := average(second, dim.score)
		delta := recent - average(first, dim.score)
		if delta > ProgressImprovedDelta {
			out.AreasImproved = append(out.AreasImproved, dim.name)
		}
		if delta < -ProgressImprovedDelta || (delta < ProgressImprovedDelta && recent < ProgressFocusScore) {
			out.AreasToFocus = append(out.AreasToFocus, dim.name)
		}
		if dim.name == "overall" {
			out.Improvement = delta
		}
	}
	return out
}

func average(rows []*types.ProgressMetric, score func(*types.ProgressMetric) float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		sum += score(r)
	}
	return sum / float64(len(rows))
}

func progressOutcome(delta float64) string {
	switch {
	case delta > ProgressImprovedDelta:
		return "improved"
	case delta < -ProgressImprovedDelta:
		return "declined"
	default:
		return "flat"
	}
}
