package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"carwash-backend/internal/errs"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var errInvalidBody = errs.NewValidationError("Invalid request body", nil)

// decodeJSON reads the request body into v. An empty body leaves v untouched
// so that presence validation reports the missing fields.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errInvalidBody
	}
	return nil
}

// writeError answers with err when it is an *errs.HTTPError. Anything else is
// logged with the request logger and collapsed to a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Status, httpErr)
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Msg(msg)
	internal := errs.NewInternalError()
	writeJSON(w, internal.Status, internal)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
