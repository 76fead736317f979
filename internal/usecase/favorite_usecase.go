package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/store"
)

// FavoriteUsecase は /favorites の業務ロジックです。
// 在庫や自己購入の制約は無い。トグルはContains→Add/Removeの合成で、
// ストアに第三のプリミティブは足さない。
type FavoriteUsecase struct {
	productRepo repo.ProductRepository
	sessions    *store.Manager
}

// DI
func NewFavoriteUsecase(productRepo repo.ProductRepository, sessions *store.Manager) *FavoriteUsecase {
	return &FavoriteUsecase{
		productRepo: productRepo,
		sessions:    sessions,
	}
}

type FavoriteItemView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url,omitempty"`
}

type FavoritesResponse struct {
	Items []FavoriteItemView `json:"items"`
	Count int                `json:"count"`
}

type ToggleResult struct {
	InFavorites bool `json:"in_favorites"`
}

// List は現在のお気に入り一覧。
func (u *FavoriteUsecase) List(ctx context.Context, sessionID string) (FavoritesResponse, error) {
	if sessionID == "" {
		return FavoritesResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s := u.sessions.Session(ctx, sessionID)
	return buildFavoritesResponse(s.Favorites), nil
}

// Add は登録する。登録済みならno-opで成功。
func (u *FavoriteUsecase) Add(ctx context.Context, sessionID, productID string) (FavoritesResponse, error) {
	s, snap, err := u.lookup(ctx, sessionID, productID)
	if err != nil {
		return FavoritesResponse{}, err
	}

	if err := s.Favorites.Add(ctx, snap); err != nil {
		return FavoritesResponse{}, mapStoreError(err)
	}
	return buildFavoritesResponse(s.Favorites), nil
}

// Remove は解除する。未登録ならno-op。
func (u *FavoriteUsecase) Remove(ctx context.Context, sessionID, productID string) (FavoritesResponse, error) {
	if sessionID == "" {
		return FavoritesResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return FavoritesResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s := u.sessions.Session(ctx, sessionID)
	if err := s.Favorites.Remove(ctx, productID); err != nil && !errors.Is(err, store.ErrLineNotFound) {
		return FavoritesResponse{}, mapStoreError(err)
	}
	return buildFavoritesResponse(s.Favorites), nil
}

// Toggle はハートボタン。登録済みなら解除、未登録なら登録。
func (u *FavoriteUsecase) Toggle(ctx context.Context, sessionID, productID string) (ToggleResult, error) {
	s, snap, err := u.lookup(ctx, sessionID, productID)
	if err != nil {
		return ToggleResult{}, err
	}

	if store.InFavorites(s.Favorites, productID) {
		if err := s.Favorites.Remove(ctx, productID); err != nil && !errors.Is(err, store.ErrLineNotFound) {
			return ToggleResult{}, mapStoreError(err)
		}
		return ToggleResult{InFavorites: false}, nil
	}

	if err := s.Favorites.Add(ctx, snap); err != nil {
		return ToggleResult{}, mapStoreError(err)
	}
	return ToggleResult{InFavorites: true}, nil
}

// Contains は商品がお気に入りに入っているか。
func (u *FavoriteUsecase) Contains(ctx context.Context, sessionID, productID string) (bool, error) {
	if sessionID == "" {
		return false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s := u.sessions.Session(ctx, sessionID)
	return store.InFavorites(s.Favorites, productID), nil
}

// Clear は全件解除。
func (u *FavoriteUsecase) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s := u.sessions.Session(ctx, sessionID)
	return s.Favorites.Clear(ctx)
}

// lookup はカタログ参照つきの前段。お気に入りには自己購入チェックは無い。
func (u *FavoriteUsecase) lookup(ctx context.Context, sessionID, productID string) (*store.Session, model.ProductSnapshot, error) {
	if sessionID == "" {
		return nil, model.ProductSnapshot{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return nil, model.ProductSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, model.ProductSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return nil, model.ProductSnapshot{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return nil, model.ProductSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	return u.sessions.Session(ctx, sessionID), p.Snapshot(), nil
}

func buildFavoritesResponse(f *store.FavoriteStore) FavoritesResponse {
	entries := f.Entries()

	items := make([]FavoriteItemView, 0, len(entries))
	for _, e := range entries {
		v := FavoriteItemView{
			ProductID: e.ID,
			Name:      e.Name,
			Price:     e.Price,
		}
		if len(e.ImageURLs) > 0 {
			v.ImageURL = e.ImageURLs[0]
		}
		items = append(items, v)
	}

	return FavoritesResponse{Items: items, Count: len(items)}
}
