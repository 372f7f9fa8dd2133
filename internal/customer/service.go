package customer

import (
	"context"
	"errors"

	"storefront-be/internal/transport"
)

type Service interface {
	List(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id uint) (*Customer, error)
	GetByUserID(ctx context.Context, userID uint) (*Customer, error)
	Create(ctx context.Context, in Input) (*Customer, error)
	Update(ctx context.Context, id uint, in Input, partial bool) (*Customer, error)
	UpdateByUserID(ctx context.Context, userID uint, in Input) (*Customer, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Customer, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID uint) (*Customer, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Create(ctx context.Context, in Input) (*Customer, error) {
	fe := validate(in, false)
	if in.UserID == nil {
		fe.Add("user_id", "This field is required.")
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	c := &Customer{UserID: *in.UserID, Membership: MembershipBronze}
	apply(c, in, false)

	err := s.repo.Create(ctx, c)
	switch {
	case errors.Is(err, ErrCustomerExists):
		return nil, transport.FieldErrors{"user_id": {"customer with this user already exists."}}
	case errors.Is(err, ErrUnknownUser):
		return nil, transport.FieldErrors{"user_id": {"Invalid pk - object does not exist."}}
	case err != nil:
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id uint, in Input, partial bool) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, c, in, partial)
}

// UpdateByUserID backs PUT /customers/me/; user_id is never writable there.
func (s *service) UpdateByUserID(ctx context.Context, userID uint, in Input) (*Customer, error) {
	c, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, c, in, false)
}

func (s *service) save(ctx context.Context, c *Customer, in Input, partial bool) (*Customer, error) {
	if err := validate(in, partial).Err(); err != nil {
		return nil, err
	}
	apply(c, in, partial)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func apply(c *Customer, in Input, partial bool) {
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.BirthDate != nil || !partial {
		c.BirthDate = in.BirthDate
	}
	if in.Membership != nil {
		c.Membership = *in.Membership
	}
}

func validate(in Input, partial bool) transport.FieldErrors {
	fe := transport.FieldErrors{}
	switch {
	case in.Phone == nil:
		if !partial {
			fe.Add("phone", "This field is required.")
		}
	case *in.Phone == "":
		fe.Add("phone", "This field may not be blank.")
	case len(*in.Phone) > 255:
		fe.Add("phone", "Ensure this field has no more than 255 characters.")
	}
	if in.Membership != nil && !in.Membership.Valid() {
		fe.Add("membership", `"`+string(*in.Membership)+`" is not a valid choice.`)
	}
	return fe
}
