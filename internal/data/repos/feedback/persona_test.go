package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/writemate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/writemate-backend/internal/domain"
)

func TestPersonaRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	repo := NewPersonaRepo(db, testutil.Logger(t))
	dbc := testutil.Ctx()
	session := testutil.SeedSession(t, db)

	none, err := repo.GetBySession(dbc, session.ID)
	require.NoError(t, err)
	require.Nil(t, none)

	first, err := repo.Upsert(dbc, &types.Persona{SessionID: session.ID, Goals: []string{"concise"}})
	require.NoError(t, err)
	require.Equal(t, "intermediate", first.ExperienceLevel)
	require.Equal(t, "balanced", first.PreferredTone)

	second, err := repo.Upsert(dbc, &types.Persona{
		SessionID:       session.ID,
		Goals:           []string{"persuasive"},
		ExperienceLevel: "advanced",
		FocusAreas:      []string{"structure"},
		PreferredTone:   "direct",
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, []string{"persuasive"}, []string(second.Goals))
	require.Equal(t, "advanced", second.ExperienceLevel)
	require.Equal(t, []string{"structure"}, []string(second.FocusAreas))
}

func TestAnalysisHistoryRepoCreate(t *testing.T) {
	db := testutil.DB(t)
	repo := NewAnalysisHistoryRepo(db, testutil.Logger(t))

	session := testutil.SeedSession(t, db)
	doc := testutil.SeedDocument(t, db, session.ID, "text", time.Now())
	row, err := repo.Create(testutil.Ctx(), &types.AnalysisHistory{
		DocumentID:  doc.ID,
		RawResponse: []byte(`{"annotations":[]}`),
		ModelUsed:   "gpt-5.2",
		TokensUsed:  321,
	})
	require.NoError(t, err)
	require.NotZero(t, row.ID)

	_, err = repo.Create(testutil.Ctx(), &types.AnalysisHistory{
		DocumentID:  session.ID,
		RawResponse: []byte(`{}`),
		ModelUsed:   "gpt-5.2",
	})
	require.Error(t, err, "history must reference an existing document")
}
