package collection

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
	collections, err := h.svc.List(r.Context())
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, collections)
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

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrCollectionNotFound):
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
	case errors.Is(err, ErrCollectionHasProducts):
		transport.WriteJSONError(w, ErrCollectionHasProducts.Error(), http.StatusMethodNotAllowed)
	default:
		transport.WriteValidationOr(r.Context(), w, err)
	}
}
