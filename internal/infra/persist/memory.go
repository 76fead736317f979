package persist

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
)

// インメモリ実装。プロセスが落ちると消えるので基本はテストと開発用。
type MemorySnapshotStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{slots: map[string][]byte{}}
}

func (s *MemorySnapshotStore) Load(_ context.Context, slot string) ([]model.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.slots[slot]
	if !ok {
		return nil, nil
	}
	return decodeLines(b), nil
}

func (s *MemorySnapshotStore) Save(_ context.Context, slot string, lines []model.CartLine) error {
	b, err := encodeLines(lines)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = b
	return nil
}

func (s *MemorySnapshotStore) Erase(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}

// SeedRaw はテスト用に生のペイロードを仕込む（壊れたデータの再現など）。
func (s *MemorySnapshotStore) SeedRaw(slot string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = payload
}

// Has はスロットの有無を返す（Clear後の消去確認用）。
func (s *MemorySnapshotStore) Has(slot string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.slots[slot]
	return ok
}
