package model

// ストアの1明細。スナップショット＋数量。
// カートでは quantity ≤ 在庫（採取時点）・最低1。お気に入りでは常に1で意味を持たない。
type CartLine struct {
	ProductSnapshot
	Quantity int64 `json:"quantity"`
}

// お気に入りはカート明細と同じ形（永続スロットの形式も共通）。
type FavoriteEntry = CartLine

// 永続スロットのスキーマ。versionを持たせ、将来のフィールド追加で
// 保存済みデータを壊さない（未知フィールドはゼロ値に落ちる）。
type SnapshotEnvelope struct {
	Version int        `json:"version"`
	Lines   []CartLine `json:"lines"`
}

const SnapshotSchemaVersion = 1
