package admin

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"storefront-be/internal/metrics"
	"storefront-be/internal/transport"
)

type Handler struct {
	svc     Service
	metrics *metrics.Registry
}

func NewHandler(svc Service, reg *metrics.Registry) *Handler {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Handler{svc: svc, metrics: reg}
}

func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	f := ProductFilter{
		LowInventory: q.Get("inventory") == "<10",
		Price:        q.Get("price"),
		Search:       q.Get("search"),
	}
	if raw := q.Get("collection"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			transport.WriteFieldErrors(w, transport.FieldErrors{
				"collection": {"Select a valid choice. That choice is not one of the available choices."},
			})
			return
		}
		cid := uint(id)
		f.CollectionID = &cid
	}

	rows, total, err := h.svc.Products(r.Context(), f, page)
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, transport.NewPagedResponse(r, page, total, rows))
}

// ExportProducts buffers the workbook so a failure can still be reported as JSON.
func (h *Handler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.ExportProducts(r.Context(), &buf); err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) ClearInventory(w http.ResponseWriter, r *http.Request) {
	var in ClearInventoryInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}
	msg, err := h.svc.ClearInventory(r.Context(), in)
	if err != nil {
		transport.WriteValidationOr(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (h *Handler) Collections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.svc.Collections(r.Context(), q.Get("search"), q.Get("ordering"))
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	rows, total, err := h.svc.Customers(r.Context(), r.URL.Query().Get("search"), page)
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, transport.NewPagedResponse(r, page, total, rows))
}

func (h *Handler) PatchCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := transport.URLParamID(w, r, "id")
	if !ok {
		return
	}
	var in MembershipInput
	if !transport.DecodeOrReject(w, r, &in) {
		return
	}

	if err := h.svc.SetMembership(r.Context(), id, in); err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			transport.WriteJSONError(w, "Not found.", http.StatusNotFound)
			return
		}
		transport.WriteValidationOr(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "membership": *in.Membership})
}

func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(w, r)
	if !ok {
		return
	}
	rows, total, err := h.svc.Orders(r.Context(), page)
	if err != nil {
		transport.WriteInternalError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, transport.NewPagedResponse(r, page, total, rows))
}

// Metrics exposes the in-process counters.
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, h.metrics.Snapshot())
}

func parsePage(w http.ResponseWriter, r *http.Request) (transport.Page, bool) {
	page, err := transport.ParsePage(r, PageSize)
	if err != nil {
		transport.WriteJSONError(w, "Invalid page.", http.StatusNotFound)
		return page, false
	}
	return page, true
}
