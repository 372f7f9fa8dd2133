package collection

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/transport"
)

type Service interface {
	List(ctx context.Context) ([]Collection, error)
	Get(ctx context.Context, id uint) (*Collection, error)
	Create(ctx context.Context, in Input) (*Collection, error)
	Update(ctx context.Context, id uint, in Input, partial bool) (*Collection, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Collection, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*Collection, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in Input) (*Collection, error) {
	if err := validate(in, false); err != nil {
		return nil, err
	}
	c := &Collection{Title: strings.TrimSpace(*in.Title), FeaturedProductID: in.FeaturedProductID}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapFeaturedError(err)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id uint, in Input, partial bool) (*Collection, error) {
	if err := validate(in, partial); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		c.Title = strings.TrimSpace(*in.Title)
	}
	if in.FeaturedProductID != nil || !partial {
		c.FeaturedProductID = in.FeaturedProductID
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapFeaturedError(err)
	}
	return c, nil
}

// Delete refuses while any product still belongs to the collection.
func (s *service) Delete(ctx context.Context, id uint) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c.ProductsCount > 0 {
		return ErrCollectionHasProducts
	}
	return s.repo.Delete(ctx, id)
}

func mapFeaturedError(err error) error {
	if errors.Is(err, ErrUnknownFeatured) {
		return transport.FieldErrors{"featured_product": {"Invalid pk - object does not exist."}}
	}
	return err
}

func validate(in Input, partial bool) error {
	fe := transport.FieldErrors{}
	switch {
	case in.Title == nil:
		if !partial {
			fe.Add("title", "This field is required.")
		}
	case strings.TrimSpace(*in.Title) == "":
		fe.Add("title", "This field may not be blank.")
	case len(*in.Title) > 255:
		fe.Add("title", "Ensure this field has no more than 255 characters.")
	}
	return fe.Err()
}
