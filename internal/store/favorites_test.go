package store_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/infra/persist"
	"storefront/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFavorites(t *testing.T) (*store.FavoriteStore, *persist.MemorySnapshotStore) {
	t.Helper()
	ss := persist.NewMemorySnapshotStore()
	return store.NewFavoriteStore(context.Background(), "favoriteItems:test", ss), ss
}

// Test: 追加は冪等（二重追加で数量は増えない）
func TestFavorites_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)

	p := snapshot("p1", 100, 5)
	require.NoError(t, f.Add(ctx, p))
	require.NoError(t, f.Add(ctx, p))

	entries := f.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].Quantity)
}

// Test: 在庫0でも登録できる（在庫制約なし）
func TestFavorites_NoStockInvariant(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)

	require.NoError(t, f.Add(ctx, snapshot("p1", 100, 0)))
	assert.True(t, f.Contains("p1"))
}

// Test: 未登録のremoveはno-op
func TestFavorites_RemoveMissing(t *testing.T) {
	f, _ := newFavorites(t)

	err := f.Remove(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrLineNotFound)
	assert.Equal(t, 0, f.Len())
}

// Test: トグル2回で元の状態に戻る
func TestFavorites_TogglePairRestoresMembership(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)

	p := snapshot("p1", 100, 5)

	// 未登録スタート：add→remove→未登録
	require.NoError(t, f.Add(ctx, p))
	require.NoError(t, f.Remove(ctx, p.ID))
	assert.False(t, store.InFavorites(f, p.ID))

	// 登録済みスタート：remove→add→登録済み
	require.NoError(t, f.Add(ctx, p))
	require.NoError(t, f.Remove(ctx, p.ID))
	require.NoError(t, f.Add(ctx, p))
	assert.True(t, store.InFavorites(f, p.ID))
}

// Test: clearでスロットも消える
func TestFavorites_ClearErasesSlot(t *testing.T) {
	ctx := context.Background()
	f, ss := newFavorites(t)

	require.NoError(t, f.Add(ctx, snapshot("p1", 100, 5)))
	require.True(t, ss.Has("favoriteItems:test"))

	require.NoError(t, f.Clear(ctx))
	assert.Equal(t, 0, f.Len())
	assert.False(t, ss.Has("favoriteItems:test"))
}

// Test: 不正なスナップショットは弾く
func TestFavorites_RejectsInvalidSnapshot(t *testing.T) {
	f, _ := newFavorites(t)

	err := f.Add(context.Background(), model.ProductSnapshot{})
	assert.ErrorIs(t, err, store.ErrInvalidSnapshot)
}
