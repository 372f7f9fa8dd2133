package address

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/transport"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

// CustomerFinder resolves the customer behind the signed-in user.
type CustomerFinder interface {
	GetByUserID(ctx context.Context, userID uint) (*customer.Customer, error)
}

// Service manages the address book of the calling user's customer.
type Service interface {
	List(ctx context.Context) ([]Address, error)
	Get(ctx context.Context, id uint) (*Address, error)
	Create(ctx context.Context, in Input) (*Address, error)
	Update(ctx context.Context, id uint, in Input, partial bool) (*Address, error)
	Delete(ctx context.Context, id uint) error
	SetDefault(ctx context.Context, id uint) error
}

type service struct {
	repo      Repository
	customers CustomerFinder
}

func NewService(repo Repository, customers CustomerFinder) Service {
	return &service{repo: repo, customers: customers}
}

func (s *service) customerID(ctx context.Context) (uint, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return 0, ErrNoCustomer
	}
	c, err := s.customers.GetByUserID(ctx, userID)
	if errors.Is(err, customer.ErrCustomerNotFound) {
		return 0, ErrNoCustomer
	}
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *service) List(ctx context.Context) ([]Address, error) {
	cid, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCustomer(ctx, cid)
}

func (s *service) Get(ctx context.Context, id uint) (*Address, error) {
	cid, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, cid, id)
}

func (s *service) Create(ctx context.Context, in Input) (*Address, error) {
	if err := validate(in, false); err != nil {
		return nil, err
	}
	cid, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}

	a := &Address{
		CustomerID: cid,
		Street:     strings.TrimSpace(*in.Street),
		City:       strings.TrimSpace(*in.City),
		IsDefault:  in.SetAsDefault,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("address created",
		zap.String("layer", "service"),
		zap.Uint("customer_id", cid),
		zap.Uint("address_id", a.ID),
	)
	return a, nil
}

func (s *service) Update(ctx context.Context, id uint, in Input, partial bool) (*Address, error) {
	if err := validate(in, partial); err != nil {
		return nil, err
	}
	cid, err := s.customerID(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.Get(ctx, cid, id)
	if err != nil {
		return nil, err
	}
	if in.Street != nil {
		a.Street = strings.TrimSpace(*in.Street)
	}
	if in.City != nil {
		a.City = strings.TrimSpace(*in.City)
	}
	if in.SetAsDefault {
		a.IsDefault = true
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	cid, err := s.customerID(ctx)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, cid, id)
}

func (s *service) SetDefault(ctx context.Context, id uint) error {
	cid, err := s.customerID(ctx)
	if err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, cid, id)
}

func validate(in Input, partial bool) error {
	fe := transport.FieldErrors{}
	check := func(field string, v *string) {
		switch {
		case v == nil:
			if !partial {
				fe.Add(field, "This field is required.")
			}
		case strings.TrimSpace(*v) == "":
			fe.Add(field, "This field may not be blank.")
		case len(*v) > 255:
			fe.Add(field, "Ensure this field has no more than 255 characters.")
		}
	}
	check("street", in.Street)
	check("city", in.City)
	return fe.Err()
}
