package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("request body is empty")

// FieldErrors is a field-level validation failure rendered as
// {"field": ["message", ...]}.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], "; "))
	}
	return strings.Join(parts, ", ")
}

// Err returns nil when no field failed so callers can `return fe.Err()`.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

func WriteFieldErrors(w http.ResponseWriter, fe FieldErrors) {
	WriteJSON(w, http.StatusBadRequest, fe)
}

// WriteValidationOr renders err as a 400 when it carries field errors and
// as an opaque 500 otherwise.
func WriteValidationOr(ctx context.Context, w http.ResponseWriter, err error) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		WriteFieldErrors(w, fe)
		return
	}
	WriteInternalError(ctx, w, err)
}

// WriteInternalError logs err and answers with a generic 500; backing
// store details never reach the client.
func WriteInternalError(ctx context.Context, w http.ResponseWriter, err error) {
	logger.FromCtx(ctx).Error("unhandled error", zap.Error(err))
	WriteJSONError(w, "internal server error", http.StatusInternalServerError)
}

// DecodeJSON reads a JSON body of at most 1MB into dst.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// DecodeOrReject decodes the body and writes a 400 on failure.
// It reports whether the handler may continue.
func DecodeOrReject(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := DecodeJSON(r, dst); err != nil {
		WriteJSONError(w, "invalid JSON payload", http.StatusBadRequest)
		return false
	}
	return true
}
