package store

// 画面横断で使う派生ビュー。「カート/お気に入りに入っているか」の判定は
// ここだけに置き、各画面でインライン再実装しない。どちらも純関数で副作用なし。

func InCart(c *CartStore, productID string) bool {
	return c.Contains(productID)
}

func InFavorites(f *FavoriteStore, productID string) bool {
	return f.Contains(productID)
}
