package store

import (
	"errors"

	"storefront/internal/domain/model"
)

var (
	// 在庫上限。状態は一切変えずに返すポリシー棄却であって障害ではない。
	ErrStockExceeded = errors.New("stock exceeded")

	// 対象明細なしのremove/delete。呼び出し側ではno-op扱いでよい。
	ErrLineNotFound = errors.New("line not found")

	ErrInvalidSnapshot = model.ErrInvalidSnapshot
)
