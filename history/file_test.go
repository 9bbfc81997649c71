package history

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	Seq int `json:"seq"`
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	require.NoError(t, err)
	return store
}

func seqOf(t *testing.T, e Entry) int {
	t.Helper()
	var rec testRecord
	require.NoError(t, json.Unmarshal(e.Payload, &rec))
	return rec.Seq
}

func TestFileStoreExportHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("lists newest first", func(t *testing.T) {
		store := newTestStore(t)
		for i := 1; i <= 3; i++ {
			require.NoError(t, store.Append(ctx, KindExport, testRecord{Seq: i}))
		}

		entries, err := store.List(ctx, KindExport)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, 3, seqOf(t, entries[0]))
		assert.Equal(t, 1, seqOf(t, entries[2]))
	})

	t.Run("caps at twenty keeping the newest", func(t *testing.T) {
		store := newTestStore(t)
		for i := 1; i <= 25; i++ {
			require.NoError(t, store.Append(ctx, KindExport, testRecord{Seq: i}))
		}

		entries, err := store.List(ctx, KindExport)
		require.NoError(t, err)
		require.Len(t, entries, 20)
		assert.Equal(t, 25, seqOf(t, entries[0]))
		assert.Equal(t, 6, seqOf(t, entries[19]))
	})
}

func TestFileStoreAnalysisHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("lists chronologically", func(t *testing.T) {
		store := newTestStore(t)
		for i := 1; i <= 3; i++ {
			require.NoError(t, store.Append(ctx, KindAnalysis, testRecord{Seq: i}))
		}

		entries, err := store.List(ctx, KindAnalysis)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, 1, seqOf(t, entries[0]))
		assert.Equal(t, 3, seqOf(t, entries[2]))
	})

	t.Run("caps at ten dropping the oldest", func(t *testing.T) {
		store := newTestStore(t)
		for i := 1; i <= 12; i++ {
			require.NoError(t, store.Append(ctx, KindAnalysis, testRecord{Seq: i}))
		}

		entries, err := store.List(ctx, KindAnalysis)
		require.NoError(t, err)
		require.Len(t, entries, 10)
		assert.Equal(t, 3, seqOf(t, entries[0]))
		assert.Equal(t, 12, seqOf(t, entries[9]))
	})
}

func TestFileStoreIsolationAndClear(t *testing.T) {
	ctx := context.Background()

	t.Run("kinds are independent", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Append(ctx, KindExport, testRecord{Seq: 1}))
		require.NoError(t, store.Append(ctx, KindAnalysis, testRecord{Seq: 2}))

		exports, err := store.List(ctx, KindExport)
		require.NoError(t, err)
		analyses, err := store.List(ctx, KindAnalysis)
		require.NoError(t, err)

		assert.Len(t, exports, 1)
		assert.Len(t, analyses, 1)
	})

	t.Run("clear removes one kind only", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Append(ctx, KindExport, testRecord{Seq: 1}))
		require.NoError(t, store.Append(ctx, KindAnalysis, testRecord{Seq: 2}))

		require.NoError(t, store.Clear(ctx, KindExport))

		exports, err := store.List(ctx, KindExport)
		require.NoError(t, err)
		analyses, err := store.List(ctx, KindAnalysis)
		require.NoError(t, err)

		assert.Empty(t, exports)
		assert.Len(t, analyses, 1)
	})

	t.Run("survives reopening the file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "history.json")

		store, err := NewFileStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Append(ctx, KindExport, testRecord{Seq: 7}))

		reopened, err := NewFileStore(path)
		require.NoError(t, err)
		entries, err := reopened.List(ctx, KindExport)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 7, seqOf(t, entries[0]))
	})
}
