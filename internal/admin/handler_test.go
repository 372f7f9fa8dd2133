package admin

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront-be/internal/customer"
	"storefront-be/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]ProductRow, int, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]ProductRow), args.Int(1), args.Error(2)
}

func (m *MockRepository) AllProducts(ctx context.Context) ([]ProductRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ProductRow), args.Error(1)
}

func (m *MockRepository) ClearInventory(ctx context.Context, ids []uint) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListCollections(ctx context.Context, search, ordering string) ([]CollectionRow, error) {
	args := m.Called(ctx, search, ordering)
	return args.Get(0).([]CollectionRow), args.Error(1)
}

func (m *MockRepository) ListCustomers(ctx context.Context, search string, limit, offset int) ([]CustomerRow, int, error) {
	args := m.Called(ctx, search, limit, offset)
	return args.Get(0).([]CustomerRow), args.Int(1), args.Error(2)
}

func (m *MockRepository) UpdateMembership(ctx context.Context, id uint, ms customer.Membership) error {
	return m.Called(ctx, id, ms).Error(0)
}

func (m *MockRepository) ListOrders(ctx context.Context, limit, offset int) ([]OrderRow, int, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]OrderRow), args.Int(1), args.Error(2)
}

func newTestRouter(repo Repository, reg *metrics.Registry) http.Handler {
	h := NewHandler(NewService(repo), reg)
	r := chi.NewRouter()
	r.Get("/admin/products/", h.Products)
	r.Get("/admin/products/export/", h.ExportProducts)
	r.Post("/admin/products/clear-inventory/", h.ClearInventory)
	r.Patch("/admin/customers/{id}/", h.PatchCustomer)
	r.Get("/admin/metrics/", h.Metrics)
	return r
}

func TestHandler_Products_Filters(t *testing.T) {
	repo := new(MockRepository)
	cid := uint(2)
	repo.On("ListProducts", mock.Anything,
		ProductFilter{CollectionID: &cid, LowInventory: true, Price: PriceBelow50, Search: "mug"}, PageSize, PageSize).
		Return([]ProductRow{{ID: 1, Title: "Mug", UnitPrice: decimal.NewFromInt(5), InventoryStatus: "Low"}}, 11, nil)

	rec := httptest.NewRecorder()
	newTestRouter(repo, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/admin/products/?collection=2&inventory=%3C10&price=%3C50&search=mug&page=2", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":11`)
	assert.Contains(t, rec.Body.String(), `"inventory_status":"Low"`)
	repo.AssertExpectations(t)
}

func TestHandler_ClearInventory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("ClearInventory", mock.Anything, []uint{4, 5}).Return(int64(2), nil)

		rec := httptest.NewRecorder()
		newTestRouter(repo, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
			"/admin/products/clear-inventory/", strings.NewReader(`{"ids":[4,5]}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"2 products were successfully updated."}`, rec.Body.String())
	})

	t.Run("NoSelection", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(new(MockRepository), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
			"/admin/products/clear-inventory/", strings.NewReader(`{"ids":[]}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"ids":["This field is required."]}`, rec.Body.String())
	})
}

func TestHandler_PatchCustomer(t *testing.T) {
	t.Run("InvalidChoice", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(new(MockRepository), nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch,
			"/admin/customers/3/", strings.NewReader(`{"membership":"X"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"membership":["\"X\" is not a valid choice."]}`, rec.Body.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("UpdateMembership", mock.Anything, uint(3), customer.MembershipGold).Return(ErrCustomerNotFound)

		rec := httptest.NewRecorder()
		newTestRouter(repo, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch,
			"/admin/customers/3/", strings.NewReader(`{"membership":"G"}`)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_ExportProducts(t *testing.T) {
	repo := new(MockRepository)
	repo.On("AllProducts", mock.Anything).Return([]ProductRow{{
		ID: 4, Title: "Coffee", UnitPrice: decimal.RequireFromString("12.5"), Inventory: 30,
		InventoryStatus: "OK", CollectionTitle: "Beverages", LastUpdate: time.Now(),
	}}, nil)

	rec := httptest.NewRecorder()
	newTestRouter(repo, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/products/export/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	file, err := xlsx.OpenBinary(body)
	require.NoError(t, err)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Title", rows[0].Cells[1].Value)
	assert.Equal(t, "Coffee", rows[1].Cells[1].Value)
	assert.Equal(t, "12.50", rows[1].Cells[2].Value)
	assert.Equal(t, "Beverages", rows[1].Cells[5].Value)
}

func TestHandler_Metrics(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.Counter("event.order_created.delivered").Add(3)

	rec := httptest.NewRecorder()
	newTestRouter(new(MockRepository), reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/metrics/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"event.order_created.delivered":3}`, rec.Body.String())
}

func TestWriteProductsXLSX_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProductsXLSX(&buf, nil))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets[0].Rows, 1)
	assert.Len(t, file.Sheets[0].Rows[0].Cells, len(exportHeaders))
}
