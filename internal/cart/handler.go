package cart

import (
	"errors"
	"net/http"

	"storefront-be/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Create(r.Context())
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, toCartResponse(*c))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := cartID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toCartResponse(*c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := cartID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, ok := cartID(w, r)
	if !ok {
		return
	}
	items, err := h.svc.ListItems(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]itemResponse, 0, len(items))
	for _, i := range items {
		resp = append(resp, toItemResponse(i))
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	item, err := h.svc.GetItem(r.Context(), id, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := cartID(w, r)
	if !ok {
		return
	}
	var in AddItemInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	item, err := h.svc.AddItem(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, addedItemResponse{
		ID:        item.ID,
		ProductID: item.Product.ID,
		Quantity:  item.Quantity,
	})
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	var in UpdateItemInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	item, err := h.svc.UpdateItem(r.Context(), id, itemID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]int{"quantity": item.Quantity})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	if err := h.svc.RemoveItem(r.Context(), id, itemID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// cartID reads the {cart_id} path segment; a malformed uuid cannot name a
// cart so it is answered with 404.
func cartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "cart_id"))
	if err != nil {
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func itemIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uint, bool) {
	id, ok := cartID(w, r)
	if !ok {
		return uuid.Nil, 0, false
	}
	itemID, ok := transport.URLParamID(w, r, "id")
	return id, itemID, ok
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrCartItemNotFound) {
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
		return
	}
	transport.WriteValidationOr(r.Context(), w, err)
}
