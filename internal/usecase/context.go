package usecase

import (
	"context"

	"librarylens/internal/delivery/http/middleware"
)

// actorFromContext returns the authenticated user id for audit entries, or
// nil for anonymous and command line calls.
func actorFromContext(ctx context.Context) *int {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}
