package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/avalosmendoza/wedding-backend/pkg/errors"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

// ErrorBody is the error envelope every endpoint returns.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// WriteJSON writes payload with the given status. Encoding failures are
// logged; by then the status line is already on the wire.
func WriteJSON(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil && logg != nil {
		logg.Error(ctx, "encode response", err)
	}
}

// WriteError maps an error to its HTTP status and writes the detail
// envelope. Unknown error types fall back to 500.
func WriteError(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	if meta.HTTPStatus >= http.StatusInternalServerError && logg != nil {
		logg.Error(ctx, "request failed", typed)
	}

	detail := typed.Message()
	if cause := typed.Unwrap(); cause != nil {
		detail = detail + ": " + cause.Error()
	}
	WriteJSON(ctx, w, logg, meta.HTTPStatus, ErrorBody{Detail: detail})
}
