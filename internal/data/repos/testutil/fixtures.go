package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	types "github.com/yungbote/writemate-backend/internal/domain"
)

func SeedSession(tb testing.TB, tx *gorm.DB) *types.WritingSession {
	tb.Helper()
	s := &types.WritingSession{ID: uuid.New()}
	require.NoError(tb, tx.Create(s).Error, "seed session")
	return s
}

// SeedDocument inserts a pending document with an explicit creation time so ordering is deterministic.
func SeedDocument(tb testing.TB, tx *gorm.DB, sessionID uuid.UUID, content string, createdAt time.Time) *types.Document {
	tb.Helper()
	d := &types.Document{
		ID:        uuid.New(),
		SessionID: sessionID,
		Title:     "draft",
		Content:   content,
		Status:    types.DocumentStatusPending,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}
	require.NoError(tb, tx.Create(d).Error, "seed document")
	return d
}

func SeedAnnotation(tb testing.TB, tx *gorm.DB, documentID uuid.UUID, message string) *types.Annotation {
	tb.Helper()
	a := &types.Annotation{
		ID:          uuid.New(),
		DocumentID:  documentID,
		StartOffset: 0,
		EndOffset:   1,
		Category:    "clarity",
		Severity:    "warning",
		Message:     message,
	}
	require.NoError(tb, tx.Create(a).Error, "seed annotation")
	return a
}

func SeedPattern(tb testing.TB, tx *gorm.DB, sessionID uuid.UUID, patternType, description string, count int) *types.Pattern {
	tb.Helper()
	p := &types.Pattern{
		ID:               uuid.New(),
		SessionID:        sessionID,
		PatternType:      patternType,
		Description:      description,
		OccurrenceCount:  count,
		LastOccurrenceAt: time.Now().UTC(),
	}
	require.NoError(tb, tx.Create(p).Error, "seed pattern")
	return p
}

// SeedMetrics inserts one metric per entry in overall, each on its own document, with the other
// dimensions set to the same value.
func SeedMetrics(tb testing.TB, tx *gorm.DB, sessionID uuid.UUID, overall ...float64) []*types.ProgressMetric {
	tb.Helper()
	out := make([]*types.ProgressMetric, 0, len(overall))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range overall {
		doc := SeedDocument(tb, tx, sessionID, "scored draft", base.Add(time.Duration(i)*time.Minute))
		m := &types.ProgressMetric{
			ID:              uuid.New(),
			SessionID:       sessionID,
			Seq:             int64(i + 1),
			DocumentID:      doc.ID,
			GrammarScore:    v,
			ClarityScore:    v,
			VocabularyScore: v,
			OverallScore:    v,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(tb, tx.Create(m).Error, "seed metric")
		out = append(out, m)
	}
	return out
}
