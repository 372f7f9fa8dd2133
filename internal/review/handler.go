package review

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
	productID, ok := transport.URLParamID(w, r, "product_id")
	if !ok {
		return
	}
	reviews, err := h.svc.List(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, reviews)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	productID, id, ok := ids(w, r)
	if !ok {
		return
	}
	rv, err := h.svc.Get(r.Context(), productID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, rv)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	productID, ok := transport.URLParamID(w, r, "product_id")
	if !ok {
		return
	}
	var in Input
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	rv, err := h.svc.Create(r.Context(), productID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, rv)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) { h.update(w, r, false) }

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) { h.update(w, r, true) }

func (h *Handler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	productID, id, ok := ids(w, r)
	if !ok {
		return
	}
	var in Input
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	rv, err := h.svc.Update(r.Context(), productID, id, in, partial)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, rv)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, id, ok := ids(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), productID, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ids(w http.ResponseWriter, r *http.Request) (productID, id uint, ok bool) {
	if productID, ok = transport.URLParamID(w, r, "product_id"); !ok {
		return
	}
	id, ok = transport.URLParamID(w, r, "id")
	return
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrReviewNotFound) || errors.Is(err, ErrProductNotFound) {
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
		return
	}
	transport.WriteValidationOr(r.Context(), w, err)
}
