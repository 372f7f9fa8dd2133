// Package router is the HTTP surface: one explicit table of routes, each with
// the permissions checked before its handler runs.
package router

import (
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/admin"
	"storefront-be/internal/cart"
	"storefront-be/internal/collection"
	"storefront-be/internal/customer"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/permission"
	"storefront-be/internal/product"
	"storefront-be/internal/review"
	"storefront-be/internal/tag"
	"storefront-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// BasePath prefixes every API route.
const BasePath = "/store/api"

type Route struct {
	Method      string
	Pattern     string
	Handler     http.HandlerFunc
	Permissions []permission.Permission
}

type Handlers struct {
	Products    *product.Handler
	Reviews     *review.Handler
	Collections *collection.Handler
	Carts       *cart.Handler
	Customers   *customer.Handler
	Addresses   *address.Handler
	Orders      *order.Handler
	Users       *user.Handler
	Tags        *tag.Handler
	Admin       *admin.Handler
}

type Options struct {
	Tokens      middleware.TokenParser
	CORSOrigins []string
	Limiter     *middleware.RateLimiter
}

func perms(p ...permission.Permission) []permission.Permission { return p }

// Routes lists every endpoint relative to BasePath.
func Routes(h Handlers) []Route {
	var (
		anyone   = perms(permission.AllowAny)
		readOnly = perms(permission.IsAdminOrReadOnly)
		authed   = perms(permission.IsAuthenticated)
		staff    = perms(permission.IsAdminUser)
	)

	return []Route{
		// catalog
		{http.MethodGet, "/products/", h.Products.List, readOnly},
		{http.MethodPost, "/products/", h.Products.Create, readOnly},
		{http.MethodGet, "/products/{product_id}/", h.Products.Get, readOnly},
		{http.MethodPut, "/products/{product_id}/", h.Products.Update, readOnly},
		{http.MethodPatch, "/products/{product_id}/", h.Products.Patch, readOnly},
		{http.MethodDelete, "/products/{product_id}/", h.Products.Delete, readOnly},

		{http.MethodGet, "/products/{product_id}/reviews/", h.Reviews.List, anyone},
		{http.MethodPost, "/products/{product_id}/reviews/", h.Reviews.Create, anyone},
		{http.MethodGet, "/products/{product_id}/reviews/{id}/", h.Reviews.Get, anyone},
		{http.MethodPut, "/products/{product_id}/reviews/{id}/", h.Reviews.Update, anyone},
		{http.MethodPatch, "/products/{product_id}/reviews/{id}/", h.Reviews.Patch, anyone},
		{http.MethodDelete, "/products/{product_id}/reviews/{id}/", h.Reviews.Delete, anyone},

		{http.MethodGet, "/collections/", h.Collections.List, readOnly},
		{http.MethodPost, "/collections/", h.Collections.Create, readOnly},
		{http.MethodGet, "/collections/{id}/", h.Collections.Get, readOnly},
		{http.MethodPut, "/collections/{id}/", h.Collections.Update, readOnly},
		{http.MethodPatch, "/collections/{id}/", h.Collections.Patch, readOnly},
		{http.MethodDelete, "/collections/{id}/", h.Collections.Delete, readOnly},

		// carts are addressed by their uuid, no identity needed
		{http.MethodPost, "/carts/", h.Carts.Create, anyone},
		{http.MethodGet, "/carts/{cart_id}/", h.Carts.Get, anyone},
		{http.MethodDelete, "/carts/{cart_id}/", h.Carts.Delete, anyone},
		{http.MethodGet, "/carts/{cart_id}/items/", h.Carts.ListItems, anyone},
		{http.MethodPost, "/carts/{cart_id}/items/", h.Carts.AddItem, anyone},
		{http.MethodGet, "/carts/{cart_id}/items/{id}/", h.Carts.GetItem, anyone},
		{http.MethodPatch, "/carts/{cart_id}/items/{id}/", h.Carts.UpdateItem, anyone},
		{http.MethodDelete, "/carts/{cart_id}/items/{id}/", h.Carts.RemoveItem, anyone},

		{http.MethodGet, "/customers/", h.Customers.List, staff},
		{http.MethodPost, "/customers/", h.Customers.Create, staff},
		{http.MethodGet, "/customers/me/", h.Customers.Me, authed},
		{http.MethodPut, "/customers/me/", h.Customers.UpdateMe, authed},
		{http.MethodGet, "/customers/me/addresses/", h.Addresses.List, authed},
		{http.MethodPost, "/customers/me/addresses/", h.Addresses.Create, authed},
		{http.MethodGet, "/customers/me/addresses/{id}/", h.Addresses.Get, authed},
		{http.MethodPut, "/customers/me/addresses/{id}/", h.Addresses.Update, authed},
		{http.MethodPatch, "/customers/me/addresses/{id}/", h.Addresses.Patch, authed},
		{http.MethodDelete, "/customers/me/addresses/{id}/", h.Addresses.Delete, authed},
		{http.MethodPost, "/customers/me/addresses/{id}/default/", h.Addresses.SetDefault, authed},
		{http.MethodGet, "/customers/{id}/", h.Customers.Get, staff},
		{http.MethodPut, "/customers/{id}/", h.Customers.Update, staff},
		{http.MethodPatch, "/customers/{id}/", h.Customers.Patch, staff},
		{http.MethodDelete, "/customers/{id}/", h.Customers.Delete, staff},
		// owner check happens in the handler once the row is loaded
		{http.MethodGet, "/customers/{id}/history/", h.Orders.History, authed},

		{http.MethodGet, "/orders/", h.Orders.List, authed},
		{http.MethodPost, "/orders/", h.Orders.Checkout, authed},
		{http.MethodGet, "/orders/{id}/", h.Orders.Get, authed},
		{http.MethodPatch, "/orders/{id}/", h.Orders.Patch, staff},
		{http.MethodDelete, "/orders/{id}/", h.Orders.Delete, staff},

		// auth
		{http.MethodPost, "/auth/users/", h.Users.Register, anyone},
		{http.MethodGet, "/auth/users/me/", h.Users.Me, authed},
		{http.MethodPost, "/auth/jwt/create/", h.Users.Login, anyone},

		// back office
		{http.MethodGet, "/admin/products/", h.Admin.Products, staff},
		{http.MethodGet, "/admin/products/export/", h.Admin.ExportProducts, staff},
		{http.MethodPost, "/admin/products/clear-inventory/", h.Admin.ClearInventory, staff},
		{http.MethodGet, "/admin/products/{product_id}/tags/", h.Tags.ListForProduct, staff},
		{http.MethodPost, "/admin/products/{product_id}/tags/", h.Tags.TagProduct, staff},
		{http.MethodDelete, "/admin/products/{product_id}/tags/{tag_id}/", h.Tags.UntagProduct, staff},
		{http.MethodGet, "/admin/tags/", h.Tags.Search, staff},
		{http.MethodGet, "/admin/collections/", h.Admin.Collections, staff},
		{http.MethodGet, "/admin/customers/", h.Admin.Customers, staff},
		{http.MethodPatch, "/admin/customers/{id}/", h.Admin.PatchCustomer, staff},
		{http.MethodGet, "/admin/orders/", h.Admin.Orders, staff},
		{http.MethodGet, "/admin/metrics/", h.Admin.Metrics, staff},
	}
}

// New mounts routes under BasePath behind the shared middleware chain.
// Auth runs ahead of logging and rate limiting so both see the caller.
func New(routes []Route, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.CORSOrigins))
	if opts.Tokens != nil {
		r.Use(middleware.AuthMiddleware(opts.Tokens))
	}
	r.Use(middleware.LoggingMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route(BasePath, func(api chi.Router) {
		if opts.Limiter != nil {
			api.Use(opts.Limiter.Middleware)
		}
		for _, rt := range routes {
			api.Method(rt.Method, rt.Pattern, permission.Require(rt.Handler, rt.Permissions...))
		}
	})

	return r
}
