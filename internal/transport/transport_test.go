package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	assert.NoError(t, fe.Err())

	fe.Add("quantity", "Ensure this value is greater than or equal to 1.")
	fe.Add("product_id", "This field is required.")

	assert.Error(t, fe.Err())
	assert.Equal(t,
		"product_id: This field is required., quantity: Ensure this value is greater than or equal to 1.",
		fe.Error(),
	)
}

func TestWriteValidationOr(t *testing.T) {
	t.Run("Field errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteValidationOr(context.Background(), w, FieldErrors{"cart_id": {"The cart is empty!"}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string][]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, []string{"The cart is empty!"}, body["cart_id"])
	})

	t.Run("Other errors are hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteValidationOr(context.Background(), w, errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Quantity int `json:"quantity"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity": 3}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, 3, dst.Quantity)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &dst), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	w := httptest.NewRecorder()
	assert.False(t, DecodeOrReject(w, req, &dst))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestURLParamID(t *testing.T) {
	newReq := func(id string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	w := httptest.NewRecorder()
	id, ok := URLParamID(w, newReq("42"), "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"0", "abc", "-3"} {
		w := httptest.NewRecorder()
		_, ok := URLParamID(w, newReq(bad), "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestPagination(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/store/api/products/", nil)
		p, err := ParsePage(req, 10)
		require.NoError(t, err)
		assert.Equal(t, Page{Number: 1, Size: 10}, p)
		assert.Equal(t, 0, p.Offset())
	})

	t.Run("Invalid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/store/api/products/?page=0", nil)
		_, err := ParsePage(req, 10)
		assert.ErrorIs(t, err, ErrInvalidPage)
	})

	t.Run("Next and previous links", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://shop.test/store/api/products/?page=2&search=tea", nil)
		p, err := ParsePage(req, 10)
		require.NoError(t, err)
		assert.Equal(t, 10, p.Offset())

		resp := NewPagedResponse(req, p, 35, []int{1, 2})
		require.NotNil(t, resp.Next)
		require.NotNil(t, resp.Previous)
		assert.Equal(t, "http://shop.test/store/api/products/?page=3&search=tea", *resp.Next)
		assert.Equal(t, "http://shop.test/store/api/products/?search=tea", *resp.Previous)
	})

	t.Run("Last page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://shop.test/x/", nil)
		resp := NewPagedResponse[int](req, Page{Number: 1, Size: 10}, 3, nil)
		assert.Nil(t, resp.Next)
		assert.Nil(t, resp.Previous)
		assert.Equal(t, []int{}, resp.Results)
	})
}
