package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	respond "github.com/tradejournal/tradejournal-server/internal/api/respond"
	"github.com/tradejournal/tradejournal-server/internal/auth"
	"github.com/tradejournal/tradejournal-server/internal/config"
	"github.com/tradejournal/tradejournal-server/internal/model"
)

// owner returns the owner scope of the authenticated caller.
func owner(r *http.Request) string {
	id, _ := auth.FromContext(r.Context())
	return id.OwnerID()
}

// decodeBody reads a JSON request body into dst, converting decoder failures
// into field-level validation errors where possible.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var ve model.ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			return model.NewValidationError(te.Field, te.Field+" must be of type "+te.Type.String())
		}
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}

// page parses skip and limit query parameters.
func page(r *http.Request, cfg *config.Config) (skip, limit int, err error) {
	q := r.URL.Query()
	limit = cfg.DefaultLimit
	if v := q.Get("skip"); v != "" {
		skip, err = strconv.Atoi(v)
		if err != nil || skip < 0 {
			return 0, 0, model.NewValidationError("skip", "skip must be a non-negative integer")
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > cfg.MaxLimit {
			return 0, 0, model.NewValidationError("limit", "limit must be between 1 and "+strconv.Itoa(cfg.MaxLimit))
		}
	}
	return skip, limit, nil
}

// writeErr maps service errors onto HTTP responses. notFound is the fixed
// message used for absent and foreign records alike. Backend error text is
// echoed only outside production; a nil cfg never echoes it.
func writeErr(w http.ResponseWriter, cfg *config.Config, err error, notFound string) {
	var ve model.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.WriteFieldError(w, ve.Field, ve.Message)
	case model.IsNotFound(err):
		respond.WriteNotFound(w, notFound)
	case cfg != nil && !cfg.IsProduction():
		respond.WriteInternalError(w, err.Error())
	default:
		respond.WriteInternalError(w, "internal server error")
	}
}
