package address

import (
	"errors"
	"net/http"

	"storefront-be/internal/transport"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	a, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, a)
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
	a, err := h.svc.Update(r.Context(), id, in, partial)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, a)
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

// SetDefault serves POST /customers/me/addresses/{id}/default/.
func (h *Handler) SetDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.SetDefault(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrAddressNotFound):
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
	case errors.Is(err, ErrNoCustomer):
		transport.WriteJSONError(w, "No customer profile exists for this user.", http.StatusBadRequest)
	default:
		transport.WriteValidationOr(r.Context(), w, err)
	}
}
