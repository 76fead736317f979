package model

import "errors"

var ErrInvalidSnapshot = errors.New("invalid product snapshot")

// 操作時点の商品コピー。カタログ側が後で変わっても明細は影響を受けない。
type ProductSnapshot struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"`
	Stock     int64    `json:"stock"`
	SellerID  string   `json:"seller_id"`
	ImageURLs []string `json:"image_urls"`
	Category  string   `json:"category"`
}

// Validate は呼び出し側から渡されたスナップショットを境界で検査する。
// idは必須、価格と在庫は非負。
func (s ProductSnapshot) Validate() error {
	if s.ID == "" {
		return ErrInvalidSnapshot
	}
	if s.Price < 0 || s.Stock < 0 {
		return ErrInvalidSnapshot
	}
	return nil
}
