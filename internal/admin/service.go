package admin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/transport"

	"go.uber.org/zap"
)

type Service interface {
	Products(ctx context.Context, f ProductFilter, page transport.Page) ([]ProductRow, int, error)
	ExportProducts(ctx context.Context, w io.Writer) error
	ClearInventory(ctx context.Context, in ClearInventoryInput) (string, error)
	Collections(ctx context.Context, search, ordering string) ([]CollectionRow, error)
	Customers(ctx context.Context, search string, page transport.Page) ([]CustomerRow, int, error)
	SetMembership(ctx context.Context, customerID uint, in MembershipInput) error
	Orders(ctx context.Context, page transport.Page) ([]OrderRow, int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Products(ctx context.Context, f ProductFilter, page transport.Page) ([]ProductRow, int, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.ListProducts(ctx, f, page.Size, page.Offset())
}

func (s *service) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.repo.AllProducts(ctx)
	if err != nil {
		return err
	}
	return WriteProductsXLSX(w, products)
}

// ClearInventory zeroes stock for the selected products and returns the
// operator-facing summary.
func (s *service) ClearInventory(ctx context.Context, in ClearInventoryInput) (string, error) {
	if len(in.IDs) == 0 {
		return "", transport.FieldErrors{"ids": {"This field is required."}}
	}

	n, err := s.repo.ClearInventory(ctx, in.IDs)
	if err != nil {
		return "", err
	}

	logger.FromCtx(ctx).Info("inventory cleared",
		zap.String("layer", "service"),
		zap.Int64("updated", n),
	)
	return fmt.Sprintf("%d products were successfully updated.", n), nil
}

func (s *service) Collections(ctx context.Context, search, ordering string) ([]CollectionRow, error) {
	return s.repo.ListCollections(ctx, strings.TrimSpace(search), ordering)
}

func (s *service) Customers(ctx context.Context, search string, page transport.Page) ([]CustomerRow, int, error) {
	return s.repo.ListCustomers(ctx, strings.TrimSpace(search), page.Size, page.Offset())
}

func (s *service) SetMembership(ctx context.Context, customerID uint, in MembershipInput) error {
	if in.Membership == nil {
		return transport.FieldErrors{"membership": {"This field is required."}}
	}
	if !in.Membership.Valid() {
		return transport.FieldErrors{"membership": {fmt.Sprintf("%q is not a valid choice.", string(*in.Membership))}}
	}
	return s.repo.UpdateMembership(ctx, customerID, *in.Membership)
}

func (s *service) Orders(ctx context.Context, page transport.Page) ([]OrderRow, int, error) {
	return s.repo.ListOrders(ctx, page.Size, page.Offset())
}
