package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meetflow/internal/insight"
	"github.com/nguyentantai21042004/meetflow/internal/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(id, source string, created time.Time, p risk.Priority) *insight.Report {
	return &insight.Report{
		ID:         id,
		Source:     source,
		CreatedAt:  created,
		Priority:   p,
		Risk:       risk.Analysis{UrgencyScore: 30, TotalRisks: 1, Deadlines: []string{"Ship it by Friday."}},
		Transcript: "Ship it by Friday.",
		Agenda:     []string{"Next steps and action item assignments"},
	}
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	missing, err := s.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	created := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(ctx, "h1", report("r1", "a.vtt", created, risk.Medium)))

	got, err := s.Get(ctx, "h1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, risk.Medium, got.Priority)
	assert.Equal(t, []string{"Ship it by Friday."}, got.Risk.Deadlines)
	assert.True(t, created.Equal(got.CreatedAt))

	// Re-analysis replaces the cached report.
	require.NoError(t, s.Put(ctx, "h1", report("r2", "a.vtt", created, risk.Low)))
	got, err = s.Get(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)
}

func TestStore_Recent(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "meetflow.sqlite"))
	require.NoError(t, err)
	defer s.Close()

	base := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(ctx, "old", report("r1", "old.vtt", base, risk.Low)))
	require.NoError(t, s.Put(ctx, "new", report("r2", "new.vtt", base.Add(time.Hour), risk.High)))
	require.NoError(t, s.Put(ctx, "mid", report("r3", "mid.vtt", base.Add(time.Minute), risk.Minimal)))

	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].Hash)
	assert.Equal(t, "HIGH", entries[0].Priority)
	assert.Equal(t, 30, entries[0].Urgency)
	assert.True(t, base.Add(time.Hour).Equal(entries[0].CreatedAt))
	assert.Equal(t, "mid", entries[1].Hash)

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("hello"), 0o644))

	ha, err := HashFile(a)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", ha)

	hb, err := HashFile(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	_, err = HashFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
