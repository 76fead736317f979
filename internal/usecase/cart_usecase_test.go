package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/infra/persist"
	repo "storefront/internal/repository"
	"storefront/internal/store"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func activeProduct(id, sellerID string, price, stock int64) model.Product {
	return model.Product{
		ID:       id,
		Name:     "product " + id,
		Price:    price,
		Stock:    stock,
		SellerID: sellerID,
		IsActive: true,
	}
}

func newCartUC(t *testing.T) (*usecase.CartUsecase, *ProductRepoMock, *store.Manager) {
	t.Helper()
	pRepo := new(ProductRepoMock)
	sessions := store.NewManager(persist.NewMemorySnapshotStore(), nil)
	return usecase.NewCartUsecase(pRepo, sessions), pRepo, sessions
}

func assertHTTPStatus(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, status, he.Status)
	assert.Equal(t, msg, he.Message)
}

// =====================
// AddToCart
// =====================

// Test: 追加成功でスナップショットと合計が返る
func TestCartUsecase_AddToCart_Success(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", "seller-9", 300, 5), nil)

	out, err := uc.AddToCart(ctx, "sess-1", "user-1", "p1")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Items[0].Quantity)
	assert.Equal(t, int64(300), out.Subtotal)
	assert.Equal(t, int64(20), out.Shipping)
	assert.Equal(t, int64(320), out.Total)

	pRepo.AssertExpectations(t)
}

// Test: 自己購入は追加前に弾き、ストアには到達しない
func TestCartUsecase_AddToCart_SelfPurchaseRejected(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, sessions := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", "user-1", 300, 5), nil)

	_, err := uc.AddToCart(ctx, "sess-1", "user-1", "p1")
	assertHTTPStatus(t, err, http.StatusBadRequest, "cannot purchase your own product")

	assert.Equal(t, 0, sessions.Session(ctx, "sess-1").Cart.Len())
}

// Test: ゲスト（userID空）は自己購入チェックを通る
func TestCartUsecase_AddToCart_GuestSkipsSelfPurchase(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", "seller-9", 300, 5), nil)

	out, err := uc.AddToCart(ctx, "guest:abc", "", "p1")
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
}

// Test: 在庫上限は409 stock exceeded
func TestCartUsecase_AddToCart_StockExceeded(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", "seller-9", 300, 1), nil)

	_, err := uc.AddToCart(ctx, "sess-1", "user-1", "p1")
	require.NoError(t, err)

	_, err = uc.AddToCart(ctx, "sess-1", "user-1", "p1")
	assertHTTPStatus(t, err, http.StatusConflict, "stock exceeded")
}

// Test: 未知の商品・非公開の商品はinvalid
func TestCartUsecase_AddToCart_InvalidProduct(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "missing").Return(model.Product{}, repo.ErrNotFound)

	inactive := activeProduct("hidden", "seller-9", 300, 5)
	inactive.IsActive = false
	pRepo.On("FindByID", mock.Anything, "hidden").Return(inactive, nil)

	_, err := uc.AddToCart(ctx, "sess-1", "user-1", "missing")
	assertHTTPStatus(t, err, http.StatusBadRequest, "invalid")

	_, err = uc.AddToCart(ctx, "sess-1", "user-1", "hidden")
	assertHTTPStatus(t, err, http.StatusBadRequest, "invalid")
}

// =====================
// Remove / Delete / Clear
// =====================

// Test: removeは1減らし、deleteは明細ごと消す
func TestCartUsecase_RemoveAndDelete(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", "seller-9", 300, 5), nil)

	_, err := uc.AddToCart(ctx, "sess-1", "user-1", "p1")
	require.NoError(t, err)
	_, err = uc.AddToCart(ctx, "sess-1", "user-1", "p1")
	require.NoError(t, err)

	out, err := uc.RemoveFromCart(ctx, "sess-1", "p1")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Items[0].Quantity)

	out, err = uc.DeleteFromCart(ctx, "sess-1", "p1")
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	// 明細なしのremoveは404
	_, err = uc.RemoveFromCart(ctx, "sess-1", "p1")
	assertHTTPStatus(t, err, http.StatusNotFound, "not found")
}

// Test: clear後のカートは空
func TestCartUsecase_Clear(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", "seller-9", 300, 5), nil)

	_, err := uc.AddToCart(ctx, "sess-1", "user-1", "p1")
	require.NoError(t, err)

	require.NoError(t, uc.ClearCart(ctx, "sess-1"))

	out, err := uc.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

// =====================
// BuyNow
// =====================

// Test: buy-nowも追加と同じ検証を通る（自己購入は弾く）
func TestCartUsecase_BuyNow_RunsAddValidation(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, sessions := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "own").Return(activeProduct("own", "user-1", 300, 5), nil)

	_, err := uc.BuyNow(ctx, "sess-1", "user-1", "own")
	assertHTTPStatus(t, err, http.StatusBadRequest, "cannot purchase your own product")
	assert.Equal(t, 0, sessions.Session(ctx, "sess-1").Cart.Len())
}

// Test: buy-nowはカートへ追加してからチェックアウト先を返す
func TestCartUsecase_BuyNow_AddsThenHandsOff(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, sessions := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", "seller-9", 300, 5), nil)

	out, err := uc.BuyNow(ctx, "sess-1", "user-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "/checkout", out.RedirectTo)
	assert.Equal(t, "user-1", out.UserID)
	assert.Equal(t, 1, sessions.Session(ctx, "sess-1").Cart.Len())
}

// Test: すでに在庫上限でもチェックアウトへは進める（カートには上限ぶんが残っている）
func TestCartUsecase_BuyNow_AtStockCapStillHandsOff(t *testing.T) {
	ctx := context.Background()
	uc, pRepo, _ := newCartUC(t)

	pRepo.On("FindByID", mock.Anything, "p1").Return(activeProduct("p1", "seller-9", 300, 1), nil)

	_, err := uc.AddToCart(ctx, "sess-1", "user-1", "p1")
	require.NoError(t, err)

	out, err := uc.BuyNow(ctx, "sess-1", "user-1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "/checkout", out.RedirectTo)
}
