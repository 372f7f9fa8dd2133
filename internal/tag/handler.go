package tag

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

// Search serves GET /admin/tags/?search= for label autocomplete.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, tags)
}

func (h *Handler) ListForProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := transport.URLParamID(w, r, "product_id")
	if !ok {
		return
	}
	tags, err := h.svc.ListForProduct(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, tags)
}

func (h *Handler) TagProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := transport.URLParamID(w, r, "product_id")
	if !ok {
		return
	}
	var in AttachInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	t, err := h.svc.TagProduct(r.Context(), productID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) UntagProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := transport.URLParamID(w, r, "product_id")
	if !ok {
		return
	}
	tagID, ok := transport.URLParamID(w, r, "tag_id")
	if !ok {
		return
	}
	if err := h.svc.UntagProduct(r.Context(), productID, tagID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrTagNotAttached) {
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
		return
	}
	transport.WriteValidationOr(r.Context(), w, err)
}
