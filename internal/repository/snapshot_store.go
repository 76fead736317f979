package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// ストアの永続化先。スロット名ごとに明細列を丸ごと保存するKV。
//
// Load はfail-soft：スロットが無い・壊れている場合は (nil, nil) を返す実装が正。
// 予期しないI/O障害だけを error にする。呼び出し側（store層）はどの error も
// 「空ストアで初期化」に落とすので、Load失敗がユーザーに見えることは無い。
type SnapshotStore interface {
	Load(ctx context.Context, slot string) ([]model.CartLine, error)
	Save(ctx context.Context, slot string, lines []model.CartLine) error
	Erase(ctx context.Context, slot string) error
}
