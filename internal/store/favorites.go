package store

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// お気に入り。カートと同じ構造だが数量の意味は持たない（常に1）。
// 在庫の制約も無い。
type FavoriteStore struct {
	mu      sync.Mutex
	slot    string
	persist repository.SnapshotStore
	entries []model.FavoriteEntry

	notifier
}

// NewFavoriteStore はスロットからハイドレートする。読み込み失敗は空扱い。
func NewFavoriteStore(ctx context.Context, slot string, persist repository.SnapshotStore) *FavoriteStore {
	entries, err := persist.Load(ctx, slot)
	if err != nil {
		entries = nil
	}

	return &FavoriteStore{
		slot:    slot,
		persist: persist,
		entries: sanitizeLines(entries),
	}
}

// Add は未登録なら追加する。登録済みならno-op（数量加算はしない）。
func (s *FavoriteStore) Add(ctx context.Context, p model.ProductSnapshot) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()

	if indexOf(s.entries, p.ID) >= 0 {
		s.mu.Unlock()
		return nil
	}

	s.entries = append(s.entries, model.FavoriteEntry{ProductSnapshot: p, Quantity: 1})
	events := append(s.saveLocked(ctx),
		Event{Type: EventAdded, Slot: s.slot, ProductID: p.ID, Quantity: 1,
			Message: "Product added to favorites"})

	s.mu.Unlock()
	s.emit(events...)
	return nil
}

// Remove は登録済みなら消す。無ければ ErrLineNotFound（no-op扱いでよい）。
func (s *FavoriteStore) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()

	i := indexOf(s.entries, productID)
	if i < 0 {
		s.mu.Unlock()
		return ErrLineNotFound
	}

	s.entries = removeAt(s.entries, i)
	events := append(s.saveLocked(ctx),
		Event{Type: EventRemoved, Slot: s.slot, ProductID: productID,
			Message: "Product removed from favorites"})

	s.mu.Unlock()
	s.emit(events...)
	return nil
}

// Clear は全件削除して保存スロットも消す。
func (s *FavoriteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = nil

	events := []Event{{Type: EventCleared, Slot: s.slot}}
	if err := s.persist.Erase(ctx, s.slot); err != nil {
		events = append([]Event{persistWarning(s.slot, err)}, events...)
	}

	s.mu.Unlock()
	s.emit(events...)
	return nil
}

// Contains は登録済みかどうか。
func (s *FavoriteStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.entries, productID) >= 0
}

// Entries は現在の一覧のコピーを返す。
func (s *FavoriteStore) Entries() []model.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.entries)
}

func (s *FavoriteStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *FavoriteStore) saveLocked(ctx context.Context) []Event {
	if err := s.persist.Save(ctx, s.slot, copyLines(s.entries)); err != nil {
		return []Event{persistWarning(s.slot, err)}
	}
	return nil
}
