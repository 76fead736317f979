package store

import (
	"context"
	"sync"

	"storefront/internal/repository"

	"github.com/labstack/gommon/log"
)

const (
	cartSlotPrefix     = "cartItems:"
	favoriteSlotPrefix = "favoriteItems:"
)

// 1セッションぶんのストア対。全画面がこの同じインスタンスを参照する。
type Session struct {
	ID        string
	Cart      *CartStore
	Favorites *FavoriteStore
}

// セッションごとのストアを管理する。ストアの生成（＝ハイドレーション）は
// セッションにつき一度だけで、以後は同じ対を返す。
type Manager struct {
	mu      sync.Mutex
	persist repository.SnapshotStore
	logger  *log.Logger

	sessions map[string]*Session
}

// DI
func NewManager(persist repository.SnapshotStore, logger *log.Logger) *Manager {
	return &Manager{
		persist:  persist,
		logger:   logger,
		sessions: map[string]*Session{},
	}
}

// Session はセッションIDに対応するストア対を返す。初回はスロットから
// ハイドレートして生成し、ログ購読者を繋ぐ。
func (m *Manager) Session(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	s := &Session{
		ID:        id,
		Cart:      NewCartStore(ctx, cartSlotPrefix+id, m.persist),
		Favorites: NewFavoriteStore(ctx, favoriteSlotPrefix+id, m.persist),
	}

	if m.logger != nil {
		s.Cart.Subscribe(m.logEvent)
		s.Favorites.Subscribe(m.logEvent)
	}

	m.sessions[id] = s
	return s
}

// Drop はメモリ上の対を捨てる（セッション失効時）。保存スロットには触らない。
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// 保存失敗は警告、それ以外の変異はデバッグで記録する。
func (m *Manager) logEvent(ev Event) {
	if ev.Type == EventPersistWarning {
		m.logger.Warnf("persist failed slot=%s: %s", ev.Slot, ev.Message)
		return
	}
	m.logger.Debugf("store event type=%s slot=%s product=%s qty=%d",
		ev.Type, ev.Slot, ev.ProductID, ev.Quantity)
}
