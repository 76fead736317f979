package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/store"
)

// CartUsecase は /cart の業務ロジックです。
// カタログからスナップショットを採取し、自己購入チェックを通してから
// セッションのカートストアを呼ぶ。不変条件そのものはストア側が守る。
type CartUsecase struct {
	productRepo repo.ProductRepository
	sessions    *store.Manager
}

// DI
func NewCartUsecase(productRepo repo.ProductRepository, sessions *store.Manager) *CartUsecase {
	return &CartUsecase{
		productRepo: productRepo,
		sessions:    sessions,
	}
}

type CartLineView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

type CartResponse struct {
	Items    []CartLineView `json:"items"`
	Subtotal int64          `json:"subtotal"`
	Shipping int64          `json:"shipping"`
	Total    int64          `json:"total"`
}

// チェックアウトへの受け渡し。ストアはデータ契約を持たず、行き先と
// セッション識別だけを下流に渡す。
type CheckoutHandoff struct {
	RedirectTo string `json:"redirect_to"`
	UserID     string `json:"user_id,omitempty"`
}

// GetCart は現在の明細と合計を返す。
func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s := u.sessions.Session(ctx, sessionID)
	return buildCartResponse(s.Cart), nil
}

// AddToCart はカタログからスナップショットを採取してカートへ追加する。
// 自分が出品した商品は追加前に弾き、ストアには到達させない。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID, userID, productID string) (CartResponse, error) {
	s, snap, err := u.capture(ctx, sessionID, userID, productID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := s.Cart.Add(ctx, snap); err != nil {
		return CartResponse{}, mapStoreError(err)
	}

	return buildCartResponse(s.Cart), nil
}

// RemoveFromCart は数量ステッパーの−1。数量1の明細は消える。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, sessionID, productID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s := u.sessions.Session(ctx, sessionID)
	if err := s.Cart.Remove(ctx, productID); err != nil {
		return CartResponse{}, mapStoreError(err)
	}

	return buildCartResponse(s.Cart), nil
}

// DeleteFromCart は数量に関係なく明細を消す（削除ボタン）。
func (u *CartUsecase) DeleteFromCart(ctx context.Context, sessionID, productID string) (CartResponse, error) {
	if sessionID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	s := u.sessions.Session(ctx, sessionID)
	if err := s.Cart.Delete(ctx, productID); err != nil {
		return CartResponse{}, mapStoreError(err)
	}

	return buildCartResponse(s.Cart), nil
}

// ClearCart は全明細と保存スロットを消す。
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	s := u.sessions.Session(ctx, sessionID)
	return s.Cart.Clear(ctx)
}

// BuyNow は「今すぐ購入」。追加と同じ検証・同じ追加処理を必ず通してから
// チェックアウトへの行き先を返す（ページごとの検証スキップはしない）。
func (u *CartUsecase) BuyNow(ctx context.Context, sessionID, userID, productID string) (CheckoutHandoff, error) {
	s, snap, err := u.capture(ctx, sessionID, userID, productID)
	if err != nil {
		return CheckoutHandoff{}, err
	}

	// すでにカートにある場合もAddと同じ規則（在庫の範囲で+1）に従う
	if err := s.Cart.Add(ctx, snap); err != nil && !errors.Is(err, store.ErrStockExceeded) {
		return CheckoutHandoff{}, mapStoreError(err)
	}

	return CheckoutHandoff{RedirectTo: "/checkout", UserID: userID}, nil
}

// capture は共通の前段：セッション取得→カタログ参照→自己購入チェック→スナップショット採取。
func (u *CartUsecase) capture(ctx context.Context, sessionID, userID, productID string) (*store.Session, model.ProductSnapshot, error) {
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

	// 自己購入チェック（ゲストはuserIDが空なので通る）
	if userID != "" && p.SellerID == userID {
		return nil, model.ProductSnapshot{}, NewHTTPError(http.StatusBadRequest, "cannot purchase your own product")
	}

	return u.sessions.Session(ctx, sessionID), p.Snapshot(), nil
}

func buildCartResponse(c *store.CartStore) CartResponse {
	lines := c.Lines()
	totals := store.ComputeTotals(lines)

	items := make([]CartLineView, 0, len(lines))
	for _, l := range lines {
		v := CartLineView{
			ProductID: l.ID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
		if len(l.ImageURLs) > 0 {
			v.ImageURL = l.ImageURLs[0]
		}
		items = append(items, v)
	}

	return CartResponse{
		Items:    items,
		Subtotal: totals.Subtotal,
		Shipping: totals.Shipping,
		Total:    totals.Total,
	}
}

// ストアのポリシー棄却をHTTPエラーへ写す。
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrStockExceeded):
		return NewHTTPError(http.StatusConflict, "stock exceeded")
	case errors.Is(err, store.ErrLineNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrInvalidSnapshot):
		return NewHTTPError(http.StatusBadRequest, "invalid")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
