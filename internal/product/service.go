package product

import (
	"context"
	"errors"
	"math"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/transport"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxTitleLength = 255

// unit_price is NUMERIC(6,2) and inventory is INTEGER.
var (
	minUnitPrice = decimal.NewFromInt(1)
	maxUnitPrice = decimal.RequireFromString("9999.99")
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Product, int, error)
	Get(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, in Input) (*Product, error)
	Update(ctx context.Context, id uint, in Input, partial bool) (*Product, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Product, int, error) {
	return s.repo.List(ctx, opts)
}

func (s *service) Get(ctx context.Context, id uint) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in Input) (*Product, error) {
	if err := validate(in, false); err != nil {
		return nil, err
	}

	p := &Product{}
	apply(p, in)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, mapCollectionError(err)
	}

	logger.FromCtx(ctx).Info("product created",
		zap.String("layer", "service"),
		zap.Uint("product_id", p.ID),
	)
	return p, nil
}

// Update replaces every field (PUT) or only the provided ones (PATCH).
func (s *service) Update(ctx context.Context, id uint, in Input, partial bool) (*Product, error) {
	if err := validate(in, partial); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(p, in)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, mapCollectionError(err)
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.repo.IsReferencedByOrderItem(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrProductInOrder
	}

	return s.repo.Delete(ctx, id)
}

func mapCollectionError(err error) error {
	if errors.Is(err, ErrUnknownCollection) {
		return transport.FieldErrors{"collection": {"Invalid pk - object does not exist."}}
	}
	return err
}

func apply(p *Product, in Input) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil && *in.Slug != "" {
		p.Slug = *in.Slug
	} else if p.Slug == "" {
		p.Slug = utils.Slugify(p.Title)
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.UnitPrice != nil {
		p.UnitPrice = *in.UnitPrice
	}
	if in.Inventory != nil {
		p.Inventory = *in.Inventory
	}
	if in.CollectionID != nil {
		p.CollectionID = *in.CollectionID
	}
}

// validate checks field constraints. Required fields are only enforced
// when the input is not partial.
func validate(in Input, partial bool) error {
	fe := transport.FieldErrors{}
	const required = "This field is required."

	switch {
	case in.Title == nil:
		if !partial {
			fe.Add("title", required)
		}
	case strings.TrimSpace(*in.Title) == "":
		fe.Add("title", "This field may not be blank.")
	case len(*in.Title) > maxTitleLength:
		fe.Add("title", "Ensure this field has no more than 255 characters.")
	}

	switch {
	case in.UnitPrice == nil:
		if !partial {
			fe.Add("unit_price", required)
		}
	case in.UnitPrice.LessThan(minUnitPrice):
		fe.Add("unit_price", "Ensure this value is greater than or equal to 1.")
	case in.UnitPrice.GreaterThan(maxUnitPrice):
		fe.Add("unit_price", "Ensure that there are no more than 6 digits in total.")
	case !in.UnitPrice.Equal(in.UnitPrice.Round(2)):
		fe.Add("unit_price", "Ensure that there are no more than 2 decimal places.")
	}

	switch {
	case in.Inventory == nil:
		if !partial {
			fe.Add("inventory", required)
		}
	case *in.Inventory < 0:
		fe.Add("inventory", "Ensure this value is greater than or equal to 0.")
	case *in.Inventory > math.MaxInt32:
		fe.Add("inventory", "Ensure this value is less than or equal to 2147483647.")
	}

	if in.CollectionID == nil && !partial {
		fe.Add("collection", required)
	}

	return fe.Err()
}
