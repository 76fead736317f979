package store

import "sync"

type EventType string

const (
	EventAdded           EventType = "added"
	EventQuantityChanged EventType = "quantity_changed"
	EventRemoved         EventType = "removed"
	EventCleared         EventType = "cleared"
	EventStockExceeded   EventType = "stock_exceeded"
	EventPersistWarning  EventType = "persist_warning"
)

// ストアの変異通知。複数の画面が同じストアを参照するので、
// 変異のたびに購読者全員へ同期的に配信する。
type Event struct {
	Type      EventType `json:"type"`
	Slot      string    `json:"slot"`
	ProductID string    `json:"product_id,omitempty"`
	Quantity  int64     `json:"quantity,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// 購読者管理。両ストアに埋め込んで使う。
type notifier struct {
	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(Event)
}

// Subscribe は購読を登録し、解除用の関数を返す。
func (n *notifier) Subscribe(fn func(Event)) func() {
	n.subMu.Lock()
	defer n.subMu.Unlock()

	if n.subs == nil {
		n.subs = map[int]func(Event){}
	}
	id := n.nextSub
	n.nextSub++
	n.subs[id] = fn

	return func() {
		n.subMu.Lock()
		defer n.subMu.Unlock()
		delete(n.subs, id)
	}
}

// emit は変異順どおりに購読者全員へ配る。ストアのロックの外で呼ぶこと。
func (n *notifier) emit(events ...Event) {
	n.subMu.Lock()
	fns := make([]func(Event), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.subMu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}
