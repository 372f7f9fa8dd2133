package product

import (
	"context"
	"errors"
	"math"
	"testing"

	"storefront-be/internal/transport"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, opts ListOptions) ([]Product, int, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Product), args.Int(1), args.Error(2)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) IsReferencedByOrderItem(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// --- Helpers ---

func strPtr(s string) *string { return &s }

func validInput() Input {
	price := decimal.RequireFromString("12.50")
	inventory := 10
	collection := uint(1)
	return Input{
		Title:        strPtr("Green Tea"),
		UnitPrice:    &price,
		Inventory:    &inventory,
		CollectionID: &collection,
	}
}

func fieldErrors(t *testing.T, err error) transport.FieldErrors {
	t.Helper()
	var fe transport.FieldErrors
	require.True(t, errors.As(err, &fe), "expected field errors, got %v", err)
	return fe
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("SlugDerivedFromTitle", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Slug == "green-tea" && p.Title == "Green Tea" && p.Inventory == 10
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*Product).ID = 42
		}).Return(nil)

		p, err := svc.Create(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, uint(42), p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("ExplicitSlugKept", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		in := validInput()
		in.Slug = strPtr("tea-1")

		repo.On("Create", ctx, mock.MatchedBy(func(p *Product) bool { return p.Slug == "tea-1" })).Return(nil)

		_, err := svc.Create(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("MissingFields", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		_, err := svc.Create(ctx, Input{})
		fe := fieldErrors(t, err)
		assert.Contains(t, fe, "title")
		assert.Contains(t, fe, "unit_price")
		assert.Contains(t, fe, "inventory")
		assert.Contains(t, fe, "collection")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PriceBelowOne", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		in := validInput()
		low := decimal.RequireFromString("0.99")
		in.UnitPrice = &low

		_, err := svc.Create(ctx, in)
		assert.Equal(t, []string{"Ensure this value is greater than or equal to 1."}, fieldErrors(t, err)["unit_price"])
	})

	t.Run("NegativeInventory", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		in := validInput()
		neg := -1
		in.Inventory = &neg

		_, err := svc.Create(ctx, in)
		assert.Contains(t, fieldErrors(t, err), "inventory")
	})

	t.Run("PriceTooManyDigits", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		in := validInput()
		high := decimal.RequireFromString("100000.00")
		in.UnitPrice = &high

		_, err := svc.Create(ctx, in)
		assert.Equal(t, []string{"Ensure that there are no more than 6 digits in total."}, fieldErrors(t, err)["unit_price"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PriceAtColumnMax", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		in := validInput()
		top := decimal.RequireFromString("9999.99")
		in.UnitPrice = &top
		repo.On("Create", ctx, mock.Anything).Return(nil)

		_, err := svc.Create(ctx, in)
		assert.NoError(t, err)
	})

	t.Run("InventoryAboveInt32", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		in := validInput()
		huge := math.MaxInt32 + 1
		in.Inventory = &huge

		_, err := svc.Create(ctx, in)
		assert.Equal(t, []string{"Ensure this value is less than or equal to 2147483647."}, fieldErrors(t, err)["inventory"])
	})

	t.Run("UnknownCollection", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("Create", ctx, mock.Anything).Return(ErrUnknownCollection)

		_, err := svc.Create(ctx, validInput())
		assert.Contains(t, fieldErrors(t, err), "collection")
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialKeepsOtherFields", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		existing := &Product{ID: 3, Title: "Tea", Slug: "tea", UnitPrice: decimal.NewFromInt(5), Inventory: 2, CollectionID: 1}
		inventory := 30

		repo.On("GetByID", ctx, uint(3)).Return(existing, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(p *Product) bool {
			return p.Inventory == 30 && p.Title == "Tea" && p.Slug == "tea"
		})).Return(nil)

		p, err := svc.Update(ctx, 3, Input{Inventory: &inventory}, true)
		require.NoError(t, err)
		assert.Equal(t, 30, p.Inventory)
		repo.AssertExpectations(t)
	})

	t.Run("FullRequiresEveryField", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		inventory := 30

		_, err := svc.Update(ctx, 3, Input{Inventory: &inventory}, false)
		assert.Contains(t, fieldErrors(t, err), "title")
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("GetByID", ctx, uint(3)).Return(nil, ErrProductNotFound)

		_, err := svc.Update(ctx, 3, validInput(), false)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("RefusedWhenOrdered", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("GetByID", ctx, uint(3)).Return(&Product{ID: 3}, nil)
		repo.On("IsReferencedByOrderItem", ctx, uint(3)).Return(true, nil)

		err := svc.Delete(ctx, 3)
		assert.ErrorIs(t, err, ErrProductInOrder)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("GetByID", ctx, uint(3)).Return(&Product{ID: 3}, nil)
		repo.On("IsReferencedByOrderItem", ctx, uint(3)).Return(false, nil)
		repo.On("Delete", ctx, uint(3)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 3))
		repo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("GetByID", ctx, uint(3)).Return(nil, ErrProductNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, 3), ErrProductNotFound)
	})
}

func TestInventoryStatus_Boundary(t *testing.T) {
	assert.Equal(t, InventoryLow, InventoryStatus(0))
	assert.Equal(t, InventoryLow, InventoryStatus(9))
	assert.Equal(t, InventoryOK, InventoryStatus(10))
	assert.Equal(t, InventoryOK, InventoryStatus(500))
}

func TestProduct_PriceWithTax(t *testing.T) {
	p := Product{UnitPrice: decimal.RequireFromString("19.99")}
	assert.Equal(t, "21.99", p.PriceWithTax().StringFixed(2))
}
