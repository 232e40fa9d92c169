package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/writemate-backend/internal/data/repos"
	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/observability"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
	"github.com/yungbote/writemate-backend/internal/realtime"
	"github.com/yungbote/writemate-backend/internal/realtime/bus"
)

const (
	// MasteryMinOccurrences is how often a pattern must have been seen before it can be mastered.
	MasteryMinOccurrences = 3
	// MasteryRecentDocuments is the size of the window of latest documents searched for the pattern.
	MasteryRecentDocuments = 5
	// MasteryDescriptionPrefix is how many leading runes of the description identify the pattern.
	MasteryDescriptionPrefix = 50
)

// IssueMatcher decides whether a pattern still shows up in a set of annotations.
type IssueMatcher interface {
	IssueStillPresent(pattern *types.Pattern, recent []*types.Annotation) bool
}

// PrefixMatcher matches when an annotation message contains the first PrefixLen runes of the
// pattern description, ignoring case. The prefix is a literal substring.
type PrefixMatcher struct {
	PrefixLen int
}

func (m PrefixMatcher) IssueStillPresent(pattern *types.Pattern, recent []*types.Annotation) bool {
	if pattern == nil {
		return false
	}
	n := m.PrefixLen
	if n <= 0 {
		n = MasteryDescriptionPrefix
	}
	needle := strings.ToLower(runePrefix(pattern.Description, n))
	for _, a := range recent {
		if a != nil && strings.Contains(strings.ToLower(a.Message), needle) {
			return true
		}
	}
	return false
}

func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

type PatternMastery interface {
	// EvaluateMastery marks every eligible pattern that no longer appears in the session's recent
	// documents and returns the patterns mastered by this call.
	EvaluateMastery(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.Pattern, error)
}

type patternMastery struct {
	log         *logger.Logger
	patterns    repos.PatternRepo
	documents   repos.DocumentRepo
	annotations repos.AnnotationRepo
	matcher     IssueMatcher
	events      bus.Bus
	now         func() time.Time
}

func NewPatternMastery(
	baseLog *logger.Logger,
	patterns repos.PatternRepo,
	documents repos.DocumentRepo,
	annotations repos.AnnotationRepo,
	matcher IssueMatcher,
	events bus.Bus,
) PatternMastery {
	if matcher == nil {
		matcher = PrefixMatcher{PrefixLen: MasteryDescriptionPrefix}
	}
	if events == nil {
		events = bus.NewNoopBus()
	}
	return &patternMastery{
		log:         baseLog.With("service", "PatternMastery"),
		patterns:    patterns,
		documents:   documents,
		annotations: annotations,
		matcher:     matcher,
		events:      events,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *patternMastery) EvaluateMastery(dbc dbctx.Context, sessionID uuid.UUID) ([]*types.Pattern, error) {
	ctx, span := observability.StartSpan(dbc.Context(), "PatternMastery.EvaluateMastery")
	dbc = dbc.WithContext(ctx)
	var err error
	defer func() { observability.EndSpan(span, err) }()

	candidates, err := s.patterns.ListMasteryCandidates(dbc, sessionID, MasteryMinOccurrences)
	if err != nil {
		return nil, err
	}
	mastered := []*types.Pattern{}
	if len(candidates) == 0 {
		return mastered, nil
	}

	docs, err := s.documents.ListRecentBySession(dbc, sessionID, MasteryRecentDocuments)
	if err != nil {
		return nil, err
	}
	docIDs := make([]uuid.UUID, 0, len(docs))
	for _, d := range docs {
		docIDs = append(docIDs, d.ID)
	}
	// An empty window yields no annotations, so every candidate counts as absent.
	recent, err := s.annotations.ListByDocumentIDs(dbc, docIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range candidates {
		if s.matcher.IssueStillPresent(p, recent) {
			continue
		}
		at := s.now()
		changed, markErr := s.patterns.MarkMastered(dbc, p.ID, at)
		if markErr != nil {
			err = markErr
			return nil, err
		}
		if !changed {
			continue
		}
		p.IsMastered = true
		p.MasteredAt = &at
		mastered = append(mastered, p)
	}

	observability.Current().AddPatternsMastered(len(mastered))
	for _, p := range mastered {
		s.log.Info("Pattern mastered", "session_id", sessionID, "pattern_type", p.PatternType, "occurrence_count", p.OccurrenceCount)
		s.publish(dbc, p)
	}
	return mastered, nil
}

func (s *patternMastery) publish(dbc dbctx.Context, p *types.Pattern) {
	pubErr := s.events.Publish(dbc.Context(), realtime.Event{
		Type:      realtime.EventPatternMastered,
		SessionID: p.SessionID,
		Data:      p,
		At:        s.now(),
	})
	observability.Current().IncEventPublished(realtime.EventPatternMastered, pubErr)
	if pubErr != nil {
		s.log.Warn("Publish pattern.mastered failed", "pattern_id", p.ID, "error", pubErr)
	}
}
