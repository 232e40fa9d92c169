package feedback

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/writemate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/writemate-backend/internal/domain"
	apperrors "github.com/yungbote/writemate-backend/internal/pkg/errors"
)

func TestDocumentRepoCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	repo := NewDocumentRepo(db, testutil.Logger(t))
	dbc := testutil.Ctx()
	session := testutil.SeedSession(t, db)

	doc, err := repo.Create(dbc, &types.Document{SessionID: session.ID, Title: "Essay", Content: "Hello there."})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, doc.ID)
	require.Equal(t, types.DocumentStatusPending, doc.Status)

	got, err := repo.GetByID(dbc, doc.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello there.", got.Content)

	_, err = repo.GetByID(dbc, uuid.New())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDocumentRepoGetWithAnnotations(t *testing.T) {
	db := testutil.DB(t)
	repo := NewDocumentRepo(db, testutil.Logger(t))
	session := testutil.SeedSession(t, db)
	doc := testutil.SeedDocument(t, db, session.ID, "text", time.Now())
	testutil.SeedAnnotation(t, db, doc.ID, "first")
	testutil.SeedAnnotation(t, db, doc.ID, "second")

	got, err := repo.GetWithAnnotations(testutil.Ctx(), doc.ID)
	require.NoError(t, err)
	require.Len(t, got.Annotations, 2)
}

func TestDocumentRepoListRecentBySession(t *testing.T) {
	db := testutil.DB(t)
	repo := NewDocumentRepo(db, testutil.Logger(t))
	session := testutil.SeedSession(t, db)
	other := testutil.SeedSession(t, db)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 7; i++ {
		d := testutil.SeedDocument(t, db, session.ID, "doc", base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, d.ID)
	}
	testutil.SeedDocument(t, db, other.ID, "elsewhere", base.Add(24*time.Hour))

	recent, err := repo.ListRecentBySession(testutil.Ctx(), session.ID, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	require.Equal(t, ids[6], recent[0].ID)
	require.Equal(t, ids[2], recent[4].ID)

	none, err := repo.ListRecentBySession(testutil.Ctx(), uuid.New(), 5)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDocumentRepoUpdateStatus(t *testing.T) {
	db := testutil.DB(t)
	repo := NewDocumentRepo(db, testutil.Logger(t))
	session := testutil.SeedSession(t, db)
	doc := testutil.SeedDocument(t, db, session.ID, "text", time.Now())

	require.NoError(t, repo.UpdateStatus(testutil.Ctx(), doc.ID, types.DocumentStatusAnalyzed))
	got, err := repo.GetByID(testutil.Ctx(), doc.ID)
	require.NoError(t, err)
	require.Equal(t, types.DocumentStatusAnalyzed, got.Status)

	err = repo.UpdateStatus(testutil.Ctx(), uuid.New(), types.DocumentStatusAnalyzed)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
