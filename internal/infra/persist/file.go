package persist

import (
	"context"
	"os"
	"path/filepath"

	"storefront/internal/domain/model"
)

// ファイル実装。スロットごとに <dir>/<slot>.json を1つ持つ。
// ブラウザプロファイル相当のローカル保存先で、デフォルトのバックエンド。
type FileSnapshotStore struct {
	dir string
}

func NewFileSnapshotStore(dir string) (*FileSnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSnapshotStore{dir: dir}, nil
}

func (s *FileSnapshotStore) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

// Load はファイルが無い・読めない・壊れている場合すべて空を返す。
func (s *FileSnapshotStore) Load(_ context.Context, slot string) ([]model.CartLine, error) {
	b, err := os.ReadFile(s.path(slot))
	if err != nil {
		return nil, nil
	}
	return decodeLines(b), nil
}

// Save は一時ファイルに書いてからrenameする。途中で落ちても旧スナップショットが残る。
func (s *FileSnapshotStore) Save(_ context.Context, slot string, lines []model.CartLine) error {
	b, err := encodeLines(lines)
	if err != nil {
		return err
	}

	tmp := s.path(slot) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(slot))
}

func (s *FileSnapshotStore) Erase(_ context.Context, slot string) error {
	err := os.Remove(s.path(slot))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
