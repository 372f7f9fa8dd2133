package customer

import (
	"errors"
	"net/http"

	"storefront-be/internal/transport"
	"storefront-be/internal/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.List(r.Context())
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, customers)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) { h.update(w, r, false) }

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) { h.update(w, r, true) }

func (h *Handler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}
	var in Input
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	c, err := h.svc.Update(r.Context(), id, in, partial)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, c)
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

// Me serves GET /customers/me/ for the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	c, err := h.svc.GetByUserID(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	var in Input
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	in.UserID = nil

	c, err := h.svc.UpdateByUserID(r.Context(), userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, c)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrCustomerNotFound):
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
	case errors.Is(err, ErrCustomerHasOrders):
		transport.WriteJSONError(w, ErrCustomerHasOrders.Error(), http.StatusMethodNotAllowed)
	default:
		transport.WriteValidationOr(r.Context(), w, err)
	}
}
