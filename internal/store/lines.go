package store

import "storefront/internal/domain/model"

// 明細列の共通操作。両ストアとも「商品IDで一意・挿入順維持」の列を持つ。

func indexOf(lines []model.CartLine, productID string) int {
	for i, l := range lines {
		if l.ID == productID {
			return i
		}
	}
	return -1
}

func removeAt(lines []model.CartLine, i int) []model.CartLine {
	return append(lines[:i], lines[i+1:]...)
}

func copyLines(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}

// ハイドレーション時の正規化。壊れた行やID重複は捨て、数量は最低1に引き上げる。
// 保存データの欠損でストアの初期化が失敗することは無い。
func sanitizeLines(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductSnapshot.Validate() != nil {
			continue
		}
		if indexOf(out, l.ID) >= 0 {
			continue
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		out = append(out, l)
	}
	return out
}
