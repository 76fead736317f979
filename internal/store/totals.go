package store

import "storefront/internal/domain/model"

// 送料は小計2000超で無料、それ以外は一律20（通貨単位には関知しない）。
const (
	FreeShippingOver = 2000
	FlatShippingFee  = 20
)

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// ComputeTotals は現在の明細から毎回計算する純関数。キャッシュしない。
func ComputeTotals(lines []model.CartLine) Totals {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.Price * l.Quantity
	}

	var shipping int64 = FlatShippingFee
	if subtotal > FreeShippingOver {
		shipping = 0
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
