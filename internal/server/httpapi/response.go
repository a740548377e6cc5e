package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/server/access"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

const (
	duplicateEmailDetail     = "User with this email already exists."
	invalidCredentialsDetail = "Incorrect email or password"
	noteNotFoundDetail       = "Note not found"
	unavailableDetail        = "service unavailable"
	internalDetail           = "internal server error"
	bodyTooLargeDetail       = "request body too large"
	invalidJSONDetail        = "invalid JSON body"
)

var (
	errBodyTooLarge = errors.New("request body too large")
	errTrailingData = errors.New("trailing data after JSON body")
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// writeError maps service errors to responses. Internal error text never
// reaches the client.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge):
		writeDetail(w, http.StatusRequestEntityTooLarge, bodyTooLargeDetail)
	case errors.Is(err, common.ErrValidation):
		writeDetail(w, http.StatusUnprocessableEntity, common.ValidationDetail(err))
	case errors.Is(err, common.ErrDuplicateEmail):
		writeDetail(w, http.StatusBadRequest, duplicateEmailDetail)
	case errors.Is(err, common.ErrInvalidCredentials):
		writeDetail(w, http.StatusUnauthorized, invalidCredentialsDetail)
	case errors.Is(err, common.ErrUnauthorized):
		access.WriteUnauthorized(w)
	case errors.Is(err, common.ErrNotFound):
		writeDetail(w, http.StatusNotFound, noteNotFoundDetail)
	case errors.Is(err, common.ErrStoreUnavailable):
		h.log.Error(r.Context(), "store unavailable", "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusServiceUnavailable, unavailableDetail)
	default:
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeDetail(w, http.StatusInternalServerError, internalDetail)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	err := dec.Decode(dst)
	if err == nil {
		// exactly one JSON value per body
		if err = dec.Decode(&struct{}{}); err == io.EOF {
			return nil
		}
		if err == nil {
			err = errTrailingData
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return common.Invalid(invalidJSONDetail)
}

// requireFields fails for every field reported absent, in name order.
func requireFields(present map[string]bool) error {
	var missing []string
	for name, ok := range present {
		if !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return common.Invalid("field required: " + strings.Join(missing, ", "))
}
