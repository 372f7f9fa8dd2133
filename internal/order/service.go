package order

import (
	"context"
	"errors"

	"storefront-be/internal/customer"
	"storefront-be/internal/event"
	"storefront-be/internal/logger"
	"storefront-be/internal/transport"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventSender is satisfied by *event.Dispatcher.
type EventSender interface {
	SendRobust(ctx context.Context, signal event.Signal, payload any) []event.Result
}

// CustomerFinder resolves the customer row behind a user.
type CustomerFinder interface {
	Get(ctx context.Context, id uint) (*customer.Customer, error)
	GetByUserID(ctx context.Context, userID uint) (*customer.Customer, error)
}

// Viewer is who is asking; staff see every order, others only their own.
type Viewer struct {
	UserID  uint
	IsStaff bool
}

type Service interface {
	Checkout(ctx context.Context, viewer Viewer, email string, in CheckoutInput) (*Order, error)
	List(ctx context.Context, viewer Viewer) ([]Order, error)
	Get(ctx context.Context, viewer Viewer, id uint) (*Order, error)
	History(ctx context.Context, customerID uint) ([]Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, in UpdateInput) (*Order, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo      Repository
	customers CustomerFinder
	events    EventSender
}

func NewService(repo Repository, customers CustomerFinder, events EventSender) Service {
	return &service{repo: repo, customers: customers, events: events}
}

// Checkout validates the cart, converts it into an order atomically and
// then announces the order. Listener failures never reach the caller.
func (s *service) Checkout(ctx context.Context, viewer Viewer, email string, in CheckoutInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Uint("user_id", viewer.UserID),
	)

	cartID, err := s.validateCart(ctx, in)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.CreateFromCart(ctx, viewer.UserID, cartID)
	switch {
	case errors.Is(err, ErrCartNotFound), errors.Is(err, ErrCartEmpty):
		// lost a race with another checkout or a cart edit
		return nil, cartError(err)
	case err != nil:
		log.Error("checkout failed", zap.Error(err))
		return nil, err
	}

	log.Info("order placed", zap.Uint("order_id", o.ID), zap.String("cart_id", cartID.String()))

	s.events.SendRobust(ctx, event.OrderCreated, Created{
		Order:     o,
		UserID:    viewer.UserID,
		UserEmail: email,
	})
	return o, nil
}

// validateCart checks the preconditions before anything is written.
func (s *service) validateCart(ctx context.Context, in CheckoutInput) (uuid.UUID, error) {
	if in.CartID == nil {
		return uuid.Nil, transport.FieldErrors{"cart_id": {"This field is required."}}
	}
	cartID, err := uuid.Parse(*in.CartID)
	if err != nil {
		return uuid.Nil, cartError(ErrInvalidUUID)
	}

	exists, items, err := s.repo.CartState(ctx, cartID)
	if err != nil {
		return uuid.Nil, err
	}
	if !exists {
		return uuid.Nil, cartError(ErrCartNotFound)
	}
	if items == 0 {
		return uuid.Nil, cartError(ErrCartEmpty)
	}
	return cartID, nil
}

func cartError(err error) transport.FieldErrors {
	return transport.FieldErrors{"cart_id": {err.Error()}}
}

func (s *service) List(ctx context.Context, viewer Viewer) ([]Order, error) {
	if viewer.IsStaff {
		return s.repo.List(ctx, nil)
	}
	c, err := s.customers.GetByUserID(ctx, viewer.UserID)
	if errors.Is(err, customer.ErrCustomerNotFound) {
		return []Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, &c.ID)
}

func (s *service) Get(ctx context.Context, viewer Viewer, id uint) (*Order, error) {
	if viewer.IsStaff {
		return s.repo.Get(ctx, id, nil)
	}
	c, err := s.customers.GetByUserID(ctx, viewer.UserID)
	if errors.Is(err, customer.ErrCustomerNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id, &c.ID)
}

func (s *service) History(ctx context.Context, customerID uint) ([]Order, error) {
	return s.repo.List(ctx, &customerID)
}

// UpdatePaymentStatus is the only mutation an order accepts after checkout.
func (s *service) UpdatePaymentStatus(ctx context.Context, id uint, in UpdateInput) (*Order, error) {
	if in.PaymentStatus == nil {
		return nil, transport.FieldErrors{"payment_status": {"This field is required."}}
	}
	if !in.PaymentStatus.Valid() {
		return nil, transport.FieldErrors{"payment_status": {`"` + string(*in.PaymentStatus) + `" is not a valid choice.`}}
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, *in.PaymentStatus); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("payment status changed",
		zap.String("layer", "service"),
		zap.Uint("order_id", id),
		zap.String("payment_status", in.PaymentStatus.Label()),
	)
	return s.repo.Get(ctx, id, nil)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
