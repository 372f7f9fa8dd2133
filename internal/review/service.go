package review

import (
	"context"
	"strings"

	"storefront-be/internal/transport"
)

// ProductChecker is the slice of the catalog the review service needs.
type ProductChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type Service interface {
	List(ctx context.Context, productID uint) ([]Review, error)
	Get(ctx context.Context, productID, id uint) (*Review, error)
	Create(ctx context.Context, productID uint, in Input) (*Review, error)
	Update(ctx context.Context, productID, id uint, in Input, partial bool) (*Review, error)
	Delete(ctx context.Context, productID, id uint) error
}

type service struct {
	repo     Repository
	products ProductChecker
}

func NewService(repo Repository, products ProductChecker) Service {
	return &service{repo: repo, products: products}
}

func (s *service) List(ctx context.Context, productID uint) ([]Review, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, productID)
}

func (s *service) Get(ctx context.Context, productID, id uint) (*Review, error) {
	return s.repo.Get(ctx, productID, id)
}

func (s *service) Create(ctx context.Context, productID uint, in Input) (*Review, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := validate(in, false); err != nil {
		return nil, err
	}

	rv := &Review{ProductID: productID, Name: strings.TrimSpace(*in.Name), Description: *in.Description}
	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) Update(ctx context.Context, productID, id uint, in Input, partial bool) (*Review, error) {
	if err := validate(in, partial); err != nil {
		return nil, err
	}

	rv, err := s.repo.Get(ctx, productID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		rv.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		rv.Description = *in.Description
	}

	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) Delete(ctx context.Context, productID, id uint) error {
	return s.repo.Delete(ctx, productID, id)
}

func (s *service) requireProduct(ctx context.Context, productID uint) error {
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

func validate(in Input, partial bool) error {
	fe := transport.FieldErrors{}
	switch {
	case in.Name == nil:
		if !partial {
			fe.Add("name", "This field is required.")
		}
	case strings.TrimSpace(*in.Name) == "":
		fe.Add("name", "This field may not be blank.")
	case len(*in.Name) > 255:
		fe.Add("name", "Ensure this field has no more than 255 characters.")
	}
	if in.Description == nil && !partial {
		fe.Add("description", "This field is required.")
	}
	return fe.Err()
}
