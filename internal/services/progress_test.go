package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/writemate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/writemate-backend/internal/domain"
	"github.com/yungbote/writemate-backend/internal/platform/dbctx"
)

type countingMastery struct {
	calls int
	err   error
}

func (m *countingMastery) EvaluateMastery(dbctx.Context, uuid.UUID) ([]*types.Pattern, error) {
	m.calls++
	return []*types.Pattern{}, m.err
}

func TestCompareProgressNeutralBelowTwoMetrics(t *testing.T) {
	for _, scores := range [][]float64{nil, {88}} {
		f := newFixture(t)
		sess := testutil.SeedSession(t, f.db)
		testutil.SeedMetrics(t, f.db, sess.ID, scores...)
		mastery := &countingMastery{}

		out, err := NewProgressComparator(f.log, f.metrics, mastery).CompareProgress(testutil.Ctx(), sess.ID)
		require.NoError(t, err)
		require.Equal(t, &ProgressComparison{AreasImproved: []string{}, AreasToFocus: []string{}}, out)
		require.Zero(t, mastery.calls)
	}
}

func TestCompareProgressImproved(t *testing.T) {
	f := newFixture(t)
	sess := testutil.SeedSession(t, f.db)
	testutil.SeedMetrics(t, f.db, sess.ID, 50, 60, 70, 90)
	mastery := &countingMastery{}

	out, err := NewProgressComparator(f.log, f.metrics, mastery).CompareProgress(testutil.Ctx(), sess.ID)
	require.NoError(t, err)
	require.InDelta(t, 25.0, out.Improvement, 1e-9)
	require.Equal(t, []string{"grammar", "clarity", "vocabulary", "overall"}, out.AreasImproved)
	require.Empty(t, out.AreasToFocus)
	require.Equal(t, 1, mastery.calls)
}

func TestCompareProgressFlatButLowNeedsFocus(t *testing.T) {
	f := newFixture(t)
	sess := testutil.SeedSession(t, f.db)
	testutil.SeedMetrics(t, f.db, sess.ID, 62, 62, 65, 65)

	out, err := NewProgressComparator(f.log, f.metrics, &countingMastery{}).CompareProgress(testutil.Ctx(), sess.ID)
	require.NoError(t, err)
	require.InDelta(t, 3.0, out.Improvement, 1e-9)
	require.Empty(t, out.AreasImproved)
	require.Equal(t, []string{"grammar", "clarity", "vocabulary", "overall"}, out.AreasToFocus)
}

func TestCompareProgressMasteryErrorIsReturned(t *testing.T) {
	f := newFixture(t)
	sess := testutil.SeedSession(t, f.db)
	testutil.SeedMetrics(t, f.db, sess.ID, 70, 80)
	boom := errors.New("boom")

	_, err := NewProgressComparator(f.log, f.metrics, &countingMastery{err: boom}).CompareProgress(testutil.Ctx(), sess.ID)
	require.ErrorIs(t, err, boom)
}

func TestCompareProgressRunsRealMastery(t *testing.T) {
	f := newFixture(t)
	sess := testutil.SeedSession(t, f.db)
	testutil.SeedMetrics(t, f.db, sess.ID, 70, 80)
	testutil.SeedPattern(t, f.db, sess.ID, "hedging", "Hedges every claim", 3)

	_, err := NewProgressComparator(f.log, f.metrics, f.mastery(nil)).CompareProgress(testutil.Ctx(), sess.ID)
	require.NoError(t, err)

	rows, err := f.patterns.ListBySession(testutil.Ctx(), sess.ID)
	require.NoError(t, err)
	require.True(t, rows[0].IsMastered)
}

func metricsOf(vals ...float64) []*types.ProgressMetric {
	out := make([]*types.ProgressMetric, 0, len(vals))
	for _, v := range vals {
		out = append(out, &types.ProgressMetric{GrammarScore: v, ClarityScore: v, VocabularyScore: v, OverallScore: v})
	}
	return out
}

func TestCompareHalves(t *testing.T) {
	cases := []struct {
		name     string
		rows     []*types.ProgressMetric
		delta    float64
		improved []string
		focus    []string
	}{
		{name: "declined", rows: metricsOf(90, 90, 70, 70), delta: -20, improved: []string{}, focus: []string{"grammar", "clarity", "vocabulary", "overall"}},
		{name: "odd count puts extra row in the later half", rows: metricsOf(50, 60, 80), delta: 20, improved: []string{"grammar", "clarity", "vocabulary", "overall"}, focus: []string{}},
		{name: "flat and high", rows: metricsOf(85, 88), delta: 3, improved: []string{}, focus: []string{}},
		{name: "delta of exactly five is neither", rows: metricsOf(60, 65), delta: 5, improved: []string{}, focus: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := compareHalves(tc.rows)
			require.InDelta(t, tc.delta, out.Improvement, 1e-9)
			require.Equal(t, tc.improved, out.AreasImproved)
			require.Equal(t, tc.focus, out.AreasToFocus)
		})
	}
}

func TestCompareHalvesMixedDimensions(t *testing.T) {
	rows := []*types.ProgressMetric{
		{GrammarScore: 60, ClarityScore: 90, VocabularyScore: 50, OverallScore: 70},
		{GrammarScore: 80, ClarityScore: 80, VocabularyScore: 52, OverallScore: 72},
	}
	out := compareHalves(rows)
	require.Equal(t, []string{"grammar"}, out.AreasImproved)
	require.Equal(t, []string{"clarity", "vocabulary"}, out.AreasToFocus)
	require.InDelta(t, 2.0, out.Improvement, 1e-9)
}
