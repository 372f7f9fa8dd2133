package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-be/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context) (*Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockRepository) GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*Item, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) AddItem(ctx context.Context, cartID uuid.UUID, productID uint, quantity int) (*Item, error) {
	args := m.Called(ctx, cartID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, itemID uint, quantity int) error {
	return m.Called(ctx, cartID, itemID, quantity).Error(0)
}

func (m *MockRepository) DeleteItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func intPtr(n int) *int    { return &n }
func uintPtr(n uint) *uint { return &n }

// --- Totals ---

func TestCart_TotalPrice(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.True(t, Cart{}.TotalPrice().IsZero())
	})

	t.Run("SumOfLines", func(t *testing.T) {
		c := Cart{Items: []Item{
			{Quantity: 3, Product: ItemProduct{UnitPrice: decimal.RequireFromString("0.10")}},
			{Quantity: 1, Product: ItemProduct{UnitPrice: decimal.RequireFromString("0.20")}},
		}}
		assert.Equal(t, "0.50", c.TotalPrice().StringFixed(2))
		assert.Equal(t, "0.30", c.Items[0].TotalPrice().StringFixed(2))
	})
}

// --- Service ---

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("DuplicateAddIncrements", func(t *testing.T) {
		repo, products := new(MockRepository), new(MockProducts)
		svc := NewService(repo, products)

		repo.On("Exists", ctx, id).Return(true, nil)
		products.On("Exists", ctx, uint(10)).Return(true, nil)
		repo.On("AddItem", ctx, id, uint(10), 2).Return(&Item{ID: 1, Quantity: 2}, nil).Once()
		repo.On("AddItem", ctx, id, uint(10), 3).Return(&Item{ID: 1, Quantity: 5}, nil).Once()

		first, err := svc.AddItem(ctx, id, AddItemInput{ProductID: uintPtr(10), Quantity: intPtr(2)})
		require.NoError(t, err)
		second, err := svc.AddItem(ctx, id, AddItemInput{ProductID: uintPtr(10), Quantity: intPtr(3)})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 5, second.Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		repo, products := new(MockRepository), new(MockProducts)
		repo.On("Exists", ctx, id).Return(true, nil)
		products.On("Exists", ctx, uint(99)).Return(false, nil)

		_, err := NewService(repo, products).AddItem(ctx, id, AddItemInput{ProductID: uintPtr(99), Quantity: intPtr(1)})

		var fe transport.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, []string{"No product with the given ID was found."}, fe["product_id"])
		repo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		repo, products := new(MockRepository), new(MockProducts)
		repo.On("Exists", ctx, id).Return(true, nil)
		products.On("Exists", ctx, uint(10)).Return(true, nil)

		_, err := NewService(repo, products).AddItem(ctx, id, AddItemInput{ProductID: uintPtr(10), Quantity: intPtr(0)})

		var fe transport.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe, "quantity")
	})

	t.Run("QuantityAboveSmallint", func(t *testing.T) {
		repo, products := new(MockRepository), new(MockProducts)
		repo.On("Exists", ctx, id).Return(true, nil)
		products.On("Exists", ctx, uint(10)).Return(true, nil)

		_, err := NewService(repo, products).AddItem(ctx, id, AddItemInput{ProductID: uintPtr(10), Quantity: intPtr(40000)})

		var fe transport.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, []string{"Ensure this value is less than or equal to 32767."}, fe["quantity"])
		repo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("IncrementOverflows", func(t *testing.T) {
		repo, products := new(MockRepository), new(MockProducts)
		repo.On("Exists", ctx, id).Return(true, nil)
		products.On("Exists", ctx, uint(10)).Return(true, nil)
		repo.On("AddItem", ctx, id, uint(10), 32767).Return(nil, ErrQuantityOutOfRange)

		_, err := NewService(repo, products).AddItem(ctx, id, AddItemInput{ProductID: uintPtr(10), Quantity: intPtr(32767)})

		var fe transport.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, []string{"Ensure this value is less than or equal to 32767."}, fe["quantity"])
	})

	t.Run("UnknownCart", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Exists", ctx, id).Return(false, nil)

		_, err := NewService(repo, new(MockProducts)).AddItem(ctx, id, AddItemInput{})
		assert.ErrorIs(t, err, ErrCartNotFound)
	})
}

func TestService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(MockRepository)

	repo.On("UpdateItemQuantity", ctx, id, uint(4), 7).Return(nil)
	repo.On("GetItem", ctx, id, uint(4)).Return(&Item{ID: 4, Quantity: 7}, nil)

	item, err := NewService(repo, nil).UpdateItem(ctx, id, 4, UpdateItemInput{Quantity: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)

	_, err = NewService(repo, nil).UpdateItem(ctx, id, 4, UpdateItemInput{Quantity: intPtr(32768)})
	var fe transport.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"Ensure this value is less than or equal to 32767."}, fe["quantity"])
	repo.AssertNumberOfCalls(t, "UpdateItemQuantity", 1)
}

// --- Handler ---

func newTestRouter(svc Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Post("/carts/", h.Create)
	r.Get("/carts/{cart_id}/", h.Get)
	r.Delete("/carts/{cart_id}/", h.Delete)
	r.Get("/carts/{cart_id}/items/", h.ListItems)
	r.Post("/carts/{cart_id}/items/", h.AddItem)
	r.Patch("/carts/{cart_id}/items/{id}/", h.UpdateItem)
	return r
}

func TestHandler_GetCart(t *testing.T) {
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("Get", mock.Anything, id).Return(&Cart{ID: id, Items: []Item{
		{ID: 1, Quantity: 2, Product: ItemProduct{ID: 10, Title: "Tea", UnitPrice: decimal.RequireFromString("2.50")}},
	}}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(NewService(repo, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carts/"+id.String()+"/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ID    string `json:"id"`
		Items []struct {
			TotalPrice string `json:"total_price"`
		} `json:"items"`
		TotalPrice string `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, id.String(), body.ID)
	assert.Equal(t, "5", body.TotalPrice)
	assert.Equal(t, "5", body.Items[0].TotalPrice)
}

func TestHandler_MalformedCartID(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(NewService(new(MockRepository), nil)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carts/not-a-uuid/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_AddItem(t *testing.T) {
	id := uuid.New()
	repo, products := new(MockRepository), new(MockProducts)
	repo.On("Exists", mock.Anything, id).Return(true, nil)
	products.On("Exists", mock.Anything, uint(3)).Return(true, nil)
	repo.On("AddItem", mock.Anything, id, uint(3), 1).
		Return(&Item{ID: 9, Quantity: 1, Product: ItemProduct{ID: 3}}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(NewService(repo, products)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/carts/"+id.String()+"/items/", strings.NewReader(`{"product_id":3,"quantity":1}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":9,"product_id":3,"quantity":1}`, rec.Body.String())
}

func TestHandler_CreateCart(t *testing.T) {
	id := uuid.New()
	repo := new(MockRepository)
	repo.On("Create", mock.Anything).Return(&Cart{ID: id, Items: []Item{}}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(NewService(repo, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/carts/", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"`+id.String()+`","items":[],"total_price":"0"}`, rec.Body.String())
}
