package snapshots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustscope/internal/model"
	"trustscope/internal/pipeline"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sample(handle string) model.Snapshot {
	return model.Snapshot{
		Account: model.AccountMetrics{
			Name:           "Sample",
			Handle:         handle,
			Platform:       "tiktok",
			Followers:      120000,
			Following:      300,
			ContentCount:   model.IntPtr(42),
			EngagementRate: 3.4,
			MonthlyGrowth:  6,
		},
		Items: []model.ContentItem{
			{ID: "v1", Likes: 4000, Comments: 120, Shares: 80, Views: 90000},
			{ID: "v2", Likes: 3100, Comments: 90, Shares: 40, Views: 70000},
		},
		Followings: []string{"@zed", "@amy"},
		FetchedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPutFetchRoundTrip(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	require.NoError(t, db.Put(ctx, sample("@Creator")))

	got, err := db.Fetch(ctx, "creator", "tiktok")
	require.NoError(t, err)
	assert.Equal(t, "@Creator", got.Account.Handle)
	assert.Equal(t, 120000, got.Account.Followers)
	require.NotNil(t, got.Account.ContentCount)
	assert.Equal(t, 42, *got.Account.ContentCount)
	assert.Equal(t, sample("x").Items, got.Items)
	assert.Equal(t, []string{"amy", "zed"}, got.Followings)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), got.FetchedAt)
}

func TestPutReplacesItems(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	require.NoError(t, db.Put(ctx, sample("@c")))

	s := sample("@c")
	s.Items = s.Items[:1]
	s.Followings = nil
	require.NoError(t, db.Put(ctx, s))

	got, err := db.Fetch(ctx, "@c", "tiktok")
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	// nil followings leave the stored list alone
	assert.Equal(t, []string{"amy", "zed"}, got.Followings)
}

func TestFetchMissing(t *testing.T) {
	db := openTest(t)
	_, err := db.Fetch(context.Background(), "@ghost", "tiktok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPutRejectsInvalid(t *testing.T) {
	db := openTest(t)
	s := sample("@bad")
	s.Account.Followers = -1
	assert.ErrorIs(t, db.Put(context.Background(), s), model.ErrInvalidInput)

	s = sample("@bad")
	s.Items[0].Likes = -4
	assert.ErrorIs(t, db.Put(context.Background(), s), model.ErrInvalidInput)
}

func TestHandlesAndDelete(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()
	require.NoError(t, db.Put(ctx, sample("@b")))
	require.NoError(t, db.Put(ctx, sample("@a")))
	other := sample("@c")
	other.Account.Platform = "twitter"
	require.NoError(t, db.Put(ctx, other))

	hs, err := db.Handles(ctx, "tiktok")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, hs)

	require.NoError(t, db.Delete(ctx, "@a", "tiktok"))
	_, err = db.Fetch(ctx, "a", "tiktok")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.Delete(ctx, "@a", "tiktok"), ErrNotFound)
}

func TestCursors(t *testing.T) {
	db := openTest(t)
	ctx := context.Background()

	v, err := db.LoadCursor(ctx, "import:a.json")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, db.SaveCursor(ctx, "import:a.json", "1"))
	require.NoError(t, db.SaveCursor(ctx, "import:a.json", "2"))
	v, err = db.LoadCursor(ctx, "import:a.json")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestFetchMissMatchesUnavailable(t *testing.T) {
	db := openTest(t)
	_, err := db.Fetch(context.Background(), "@ghost", "tiktok")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, pipeline.ErrUnavailable)
}
