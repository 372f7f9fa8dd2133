package cart

import (
	"context"
	"errors"
	"math"

	"storefront-be/internal/logger"
	"storefront-be/internal/transport"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cart_items.quantity is a SMALLINT.
const maxQuantity = math.MaxInt16

const (
	minQuantityMsg = "Ensure this value is greater than or equal to 1."
	maxQuantityMsg = "Ensure this value is less than or equal to 32767."
)

// ProductChecker is the slice of the catalog the cart needs.
type ProductChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type Service interface {
	Create(ctx context.Context) (*Cart, error)
	Get(ctx context.Context, id uuid.UUID) (*Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error)
	GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*Item, error)
	AddItem(ctx context.Context, cartID uuid.UUID, in AddItemInput) (*Item, error)
	UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, in UpdateItemInput) (*Item, error)
	RemoveItem(ctx context.Context, cartID uuid.UUID, itemID uint) error
}

type service struct {
	repo     Repository
	products ProductChecker
}

func NewService(repo Repository, products ProductChecker) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Create(ctx context.Context) (*Cart, error) {
	return s.repo.Create(ctx)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Cart, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListItems(ctx context.Context, cartID uuid.UUID) ([]Item, error) {
	if err := s.requireCart(ctx, cartID); err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, cartID)
}

func (s *service) GetItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*Item, error) {
	return s.repo.GetItem(ctx, cartID, itemID)
}

// AddItem puts a product in the cart, incrementing the existing line when
// the product is already there.
func (s *service) AddItem(ctx context.Context, cartID uuid.UUID, in AddItemInput) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("cart_id", cartID.String()),
	)

	if err := s.requireCart(ctx, cartID); err != nil {
		return nil, err
	}

	fe := transport.FieldErrors{}
	if in.ProductID == nil {
		fe.Add("product_id", "This field is required.")
	} else {
		ok, err := s.products.Exists(ctx, *in.ProductID)
		if err != nil {
			return nil, err
		}
		if !ok {
			fe.Add("product_id", ErrProductNotFound.Error())
		}
	}
	switch {
	case in.Quantity == nil:
		fe.Add("quantity", "This field is required.")
	case *in.Quantity < 1:
		fe.Add("quantity", minQuantityMsg)
	case *in.Quantity > maxQuantity:
		fe.Add("quantity", maxQuantityMsg)
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	item, err := s.repo.AddItem(ctx, cartID, *in.ProductID, *in.Quantity)
	if errors.Is(err, ErrProductNotFound) {
		return nil, transport.FieldErrors{"product_id": {ErrProductNotFound.Error()}}
	}
	if errors.Is(err, ErrQuantityOutOfRange) {
		return nil, transport.FieldErrors{"quantity": {maxQuantityMsg}}
	}
	if err != nil {
		return nil, err
	}

	log.Info("cart item added",
		zap.Uint("product_id", *in.ProductID),
		zap.Int("quantity", item.Quantity),
	)
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, in UpdateItemInput) (*Item, error) {
	switch {
	case in.Quantity == nil:
		return nil, transport.FieldErrors{"quantity": {"This field is required."}}
	case *in.Quantity < 1:
		return nil, transport.FieldErrors{"quantity": {minQuantityMsg}}
	case *in.Quantity > maxQuantity:
		return nil, transport.FieldErrors{"quantity": {maxQuantityMsg}}
	}

	if err := s.repo.UpdateItemQuantity(ctx, cartID, itemID, *in.Quantity); err != nil {
		return nil, err
	}
	return s.repo.GetItem(ctx, cartID, itemID)
}

func (s *service) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	return s.repo.DeleteItem(ctx, cartID, itemID)
}

func (s *service) requireCart(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCartNotFound
	}
	return nil
}
