package product

import (
	"errors"
	"net/http"
	"strconv"

	"storefront-be/internal/transport"

	"github.com/shopspring/decimal"
)

type Handler struct {
	svc      Service
	pageSize int
}

func NewHandler(svc Service, pageSize int) *Handler {
	return &Handler{svc: svc, pageSize: pageSize}
}

// List serves GET /products/ with filtering, search, ordering and paging.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := transport.ParsePage(r, h.pageSize)
	if err != nil {
		transport.WriteJSONError(w, "Invalid page.", http.StatusNotFound)
		return
	}

	opts, fe := parseListOptions(r)
	if fe != nil {
		transport.WriteFieldErrors(w, fe)
		return
	}
	opts.Limit = page.Size
	opts.Offset = page.Offset()

	products, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}

	results := make([]Response, 0, len(products))
	for _, p := range products {
		results = append(results, NewResponse(p))
	}
	transport.WriteJSON(w, http.StatusOK, transport.NewPagedResponse(r, page, total, results))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "product_id")
	if !ok {
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, NewResponse(*p))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, NewResponse(*p))
}

// Update serves PUT.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// Patch serves PATCH.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := transport.URLParamID(w, r, "product_id")
	if !ok {
		return
	}

	var in Input
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}

	p, err := h.svc.Update(r.Context(), id, in, partial)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, NewResponse(*p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "product_id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
	case errors.Is(err, ErrProductInOrder):
		transport.WriteJSONError(w, ErrProductInOrder.Error(), http.StatusMethodNotAllowed)
	default:
		transport.WriteValidationOr(r.Context(), w, err)
	}
}

func parseListOptions(r *http.Request) (ListOptions, transport.FieldErrors) {
	q := r.URL.Query()
	fe := transport.FieldErrors{}
	opts := ListOptions{
		Search:   q.Get("search"),
		Ordering: q.Get("ordering"),
	}

	if raw := q.Get("collection_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fe.Add("collection_id", "Enter a number.")
		} else {
			id := uint(n)
			opts.CollectionID = &id
		}
	}

	for _, f := range []struct {
		key string
		dst **decimal.Decimal
	}{
		{"unit_price__gt", &opts.PriceGT},
		{"unit_price__lt", &opts.PriceLT},
	} {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			fe.Add(f.key, "Enter a number.")
			continue
		}
		*f.dst = &d
	}

	if len(fe) > 0 {
		return opts, fe
	}
	return opts, nil
}
