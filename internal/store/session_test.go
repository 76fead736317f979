package store_test

import (
	"context"
	"testing"

	"storefront/internal/infra/persist"
	"storefront/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test: 同じセッションIDには常に同じストア対を返す
func TestManager_SessionIsCreatedOnce(t *testing.T) {
	ctx := context.Background()
	m := store.NewManager(persist.NewMemorySnapshotStore(), nil)

	s1 := m.Session(ctx, "u1")
	s2 := m.Session(ctx, "u1")
	other := m.Session(ctx, "u2")

	assert.Same(t, s1, s2)
	assert.NotSame(t, s1, other)
}

// Test: 保存済みスロットからハイドレートされる
func TestManager_HydratesFromSlots(t *testing.T) {
	ctx := context.Background()
	ss := persist.NewMemorySnapshotStore()

	// 前セッションぶんの保存を作っておく
	first := store.NewManager(ss, nil).Session(ctx, "u1")
	require.NoError(t, first.Cart.Add(ctx, snapshot("p1", 300, 5)))
	require.NoError(t, first.Cart.Add(ctx, snapshot("p1", 300, 5)))
	require.NoError(t, first.Favorites.Add(ctx, snapshot("p2", 800, 3)))

	// 別Manager＝プロセス再起動相当
	s := store.NewManager(ss, nil).Session(ctx, "u1")

	lines := s.Cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ID)
	assert.Equal(t, int64(2), lines[0].Quantity)
	assert.Equal(t, int64(300), lines[0].Price)
	assert.True(t, s.Favorites.Contains("p2"))
}

// Test: 壊れた保存データは空ストアとして立ち上がる
func TestManager_CorruptSlotHydratesEmpty(t *testing.T) {
	ctx := context.Background()
	ss := persist.NewMemorySnapshotStore()
	ss.SeedRaw("cartItems:u1", []byte(`{"version":1,"lines":[{broken`))
	ss.SeedRaw("favoriteItems:u1", []byte(`42`))

	s := store.NewManager(ss, nil).Session(ctx, "u1")

	assert.Equal(t, 0, s.Cart.Len())
	assert.Equal(t, 0, s.Favorites.Len())
}

// Test: Dropでメモリから消えるが保存スロットは残る
func TestManager_DropKeepsSlots(t *testing.T) {
	ctx := context.Background()
	ss := persist.NewMemorySnapshotStore()
	m := store.NewManager(ss, nil)

	s := m.Session(ctx, "u1")
	require.NoError(t, s.Cart.Add(ctx, snapshot("p1", 100, 5)))

	m.Drop("u1")

	again := m.Session(ctx, "u1")
	assert.NotSame(t, s, again)
	assert.Equal(t, 1, again.Cart.Len())
}
