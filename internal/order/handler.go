package order

import (
	"errors"
	"net/http"

	"storefront-be/internal/customer"
	"storefront-be/internal/permission"
	"storefront-be/internal/transport"
	"storefront-be/internal/utils"
)

type Handler struct {
	svc       Service
	customers CustomerFinder
}

func NewHandler(svc Service, customers CustomerFinder) *Handler {
	return &Handler{svc: svc, customers: customers}
}

func viewerFrom(r *http.Request) Viewer {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	return Viewer{UserID: userID, IsStaff: utils.IsStaff(r.Context())}
}

// Checkout serves POST /orders/. It answers 200 with the new order.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var in CheckoutInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}

	email := utils.GetUserEmailFromContext(r.Context())
	o, err := h.svc.Checkout(r.Context(), viewerFrom(r), email, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toResponse(*o))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context(), viewerFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOrders(w, orders)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}
	o, err := h.svc.Get(r.Context(), viewerFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toResponse(*o))
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}
	var in UpdateInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	o, err := h.svc.UpdatePaymentStatus(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toResponse(*o))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History serves GET /customers/{id}/history/ to staff and to the user
// who owns the customer row.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.customers.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !permission.IsOwnerOrAdmin(r, c.UserID) {
		permission.Deny(w, r)
		return
	}

	orders, err := h.svc.History(r.Context(), c.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOrders(w, orders)
}

func writeOrders(w http.ResponseWriter, orders []Order) {
	resp := make([]response, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toResponse(o))
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound), errors.Is(err, customer.ErrCustomerNotFound):
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
	case errors.Is(err, ErrCustomerNotFound):
		transport.WriteJSONError(w, "No customer profile exists for this user.", http.StatusBadRequest)
	default:
		transport.WriteValidationOr(r.Context(), w, err)
	}
}
