package testutil

import (
	"context"
	"net/http"

	id "ledgerguard/pkg/domain"
	"ledgerguard/pkg/requestcontext"
)

// WithActorID adds an actor ID to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// If actorID is not a valid UUID, it will not be added to the context.
func WithActorID(req *http.Request, actorID string) *http.Request {
	if parsed, err := id.ParseNodeID(actorID); err == nil {
		return req.WithContext(requestcontext.WithActorID(req.Context(), parsed))
	}
	return req
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
