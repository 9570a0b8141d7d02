// Package respond holds the uniform response envelope and the mapping
// from service errors to HTTP statuses, shared by every v1 handler.
package respond

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
)

// Envelope is the uniform response body: success flag, human-readable
// message, and the operation's data.
type Envelope[T any] struct {
	Success bool   `json:"success" doc:"Whether the operation succeeded"`
	Message string `json:"message,omitempty" doc:"Human-readable outcome message"`
	Data    T      `json:"data,omitempty" doc:"Operation result"`
}

// OK wraps data in a successful envelope.
func OK[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Success: true, Message: message, Data: data}
}

// Error converts a service error into the Huma error for its HTTP
// status. Unclassified errors become 500 with the fallback message so
// driver and store detail never reaches clients.
func Error(err error, fallback string) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind {
		case apperr.KindValidation:
			return huma.NewError(http.StatusBadRequest, appErr.Error())
		case apperr.KindNotFound:
			return huma.NewError(http.StatusNotFound, appErr.Message)
		case apperr.KindConflict:
			return huma.NewError(http.StatusConflict, appErr.Message)
		case apperr.KindForbidden:
			return huma.NewError(http.StatusForbidden, appErr.Message)
		}
	}
	return huma.NewError(http.StatusInternalServerError, fallback, err)
}

// Owner returns the authenticated owner ID placed in the context by the
// session middleware.
func Owner(ctx context.Context) (uuid.UUID, error) {
	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		return uuid.Nil, huma.NewError(http.StatusForbidden, "not authenticated")
	}
	return ownerID, nil
}
