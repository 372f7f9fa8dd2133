package tag

import (
	"context"
	"strings"

	"storefront-be/internal/transport"
)

// ObjectChecker confirms the tagged object exists.
type ObjectChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

type Service interface {
	Search(ctx context.Context, prefix string) ([]Tag, error)
	ListForProduct(ctx context.Context, productID uint) ([]Tag, error)
	TagProduct(ctx context.Context, productID uint, in AttachInput) (*Tag, error)
	UntagProduct(ctx context.Context, productID, tagID uint) error
}

type service struct {
	repo     Repository
	products ObjectChecker
}

func NewService(repo Repository, products ObjectChecker) Service {
	return &service{repo: repo, products: products}
}

func (s *service) Search(ctx context.Context, prefix string) ([]Tag, error) {
	return s.repo.Search(ctx, strings.TrimSpace(prefix))
}

func (s *service) ListForProduct(ctx context.Context, productID uint) ([]Tag, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListFor(ctx, ContentProduct, productID)
}

func (s *service) TagProduct(ctx context.Context, productID uint, in AttachInput) (*Tag, error) {
	if in.Label == nil || strings.TrimSpace(*in.Label) == "" {
		return nil, transport.FieldErrors{"label": {"This field is required."}}
	}
	label := strings.TrimSpace(*in.Label)
	if len(label) > 255 {
		return nil, transport.FieldErrors{"label": {"Ensure this field has no more than 255 characters."}}
	}

	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.Attach(ctx, ContentProduct, productID, label)
}

func (s *service) UntagProduct(ctx context.Context, productID, tagID uint) error {
	return s.repo.Detach(ctx, ContentProduct, productID, tagID)
}

func (s *service) requireProduct(ctx context.Context, id uint) error {
	ok, err := s.products.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrObjectNotFound
	}
	return nil
}
