package store

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
)

// セッション内カート。メモリ上の明細列が唯一の正で、変異のたびに
// スロットへ保存してから戻る。挿入順維持・商品IDで一意。
type CartStore struct {
	mu      sync.Mutex
	slot    string
	persist repository.SnapshotStore
	lines   []model.CartLine

	notifier
}

// NewCartStore はスロットからハイドレートしたカートを返す。
// 読み込み失敗はすべて「空のカート」に落とす。初期化は失敗しない。
func NewCartStore(ctx context.Context, slot string, persist repository.SnapshotStore) *CartStore {
	lines, err := persist.Load(ctx, slot)
	if err != nil {
		lines = nil
	}

	return &CartStore{
		slot:    slot,
		persist: persist,
		lines:   sanitizeLines(lines),
	}
}

// Add は未登録なら数量1で明細を作り、登録済みなら在庫の範囲で+1する。
// 在庫上限に達していたら状態を変えずに ErrStockExceeded。
func (s *CartStore) Add(ctx context.Context, p model.ProductSnapshot) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()

	i := indexOf(s.lines, p.ID)
	if i < 0 {
		if p.Stock < 1 {
			s.mu.Unlock()
			s.emit(Event{Type: EventStockExceeded, Slot: s.slot, ProductID: p.ID,
				Message: "Cannot add more than available stock"})
			return ErrStockExceeded
		}

		s.lines = append(s.lines, model.CartLine{ProductSnapshot: p, Quantity: 1})
		events := append(s.saveLocked(ctx),
			Event{Type: EventAdded, Slot: s.slot, ProductID: p.ID, Quantity: 1,
				Message: "Product added to cart"})
		s.mu.Unlock()
		s.emit(events...)
		return nil
	}

	if s.lines[i].Quantity >= p.Stock {
		s.mu.Unlock()
		s.emit(Event{Type: EventStockExceeded, Slot: s.slot, ProductID: p.ID,
			Message: "Cannot add more than available stock"})
		return ErrStockExceeded
	}

	// スナップショットは呼び出し時点のものに差し替える（価格・在庫を追従）
	qty := s.lines[i].Quantity + 1
	s.lines[i] = model.CartLine{ProductSnapshot: p, Quantity: qty}

	events := append(s.saveLocked(ctx),
		Event{Type: EventQuantityChanged, Slot: s.slot, ProductID: p.ID, Quantity: qty})
	s.mu.Unlock()
	s.emit(events...)
	return nil
}

// Remove は数量を1減らす。数量1の明細は消える。明細が無ければ ErrLineNotFound。
func (s *CartStore) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()

	i := indexOf(s.lines, productID)
	if i < 0 {
		s.mu.Unlock()
		return ErrLineNotFound
	}

	var events []Event
	if s.lines[i].Quantity == 1 {
		s.lines = removeAt(s.lines, i)
		events = append(s.saveLocked(ctx),
			Event{Type: EventRemoved, Slot: s.slot, ProductID: productID,
				Message: "Product removed from cart"})
	} else {
		s.lines[i].Quantity--
		qty := s.lines[i].Quantity
		events = append(s.saveLocked(ctx),
			Event{Type: EventQuantityChanged, Slot: s.slot, ProductID: productID, Quantity: qty})
	}

	s.mu.Unlock()
	s.emit(events...)
	return nil
}

// Delete は数量に関係なく明細ごと消す（削除ボタン用。数量ステッパーとは別物）。
func (s *CartStore) Delete(ctx context.Context, productID string) error {
	s.mu.Lock()

	i := indexOf(s.lines, productID)
	if i < 0 {
		s.mu.Unlock()
		return ErrLineNotFound
	}

	s.lines = removeAt(s.lines, i)
	events := append(s.saveLocked(ctx),
		Event{Type: EventRemoved, Slot: s.slot, ProductID: productID,
			Message: "Product removed from cart"})

	s.mu.Unlock()
	s.emit(events...)
	return nil
}

// Clear は全明細を空にして、保存スロット自体を消す。
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.lines = nil

	events := []Event{{Type: EventCleared, Slot: s.slot}}
	if err := s.persist.Erase(ctx, s.slot); err != nil {
		events = append([]Event{persistWarning(s.slot, err)}, events...)
	}

	s.mu.Unlock()
	s.emit(events...)
	return nil
}

// Lines は現在の明細のコピーを返す。
func (s *CartStore) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// Contains は商品IDの明細が存在するかを返す。
func (s *CartStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.lines, productID) >= 0
}

// Totals は現在の明細からその場で計算する。
func (s *CartStore) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.lines)
}

// saveLocked は現在の明細をスロットへ書く。ロック保持中に呼ぶ。
// 保存失敗は警告イベントにするだけで、メモリ上の変異は巻き戻さない。
func (s *CartStore) saveLocked(ctx context.Context) []Event {
	if err := s.persist.Save(ctx, s.slot, copyLines(s.lines)); err != nil {
		return []Event{persistWarning(s.slot, err)}
	}
	return nil
}

func persistWarning(slot string, err error) Event {
	return Event{Type: EventPersistWarning, Slot: slot, Message: err.Error()}
}
