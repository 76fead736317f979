package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カタログ参照だけを約束。カート側は取得済みスナップショットしか扱わないので
// ここに書き込み系は無い。
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
}
