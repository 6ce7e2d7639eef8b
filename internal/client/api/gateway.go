// Package api implements the HTTP+JSON gateway to the Bluesky xrpc
// endpoints the client consumes: session creation, session refresh,
// and the timeline feed.
package api

import (
	"context"

	"github.com/gaulatti/cirrus/internal/client/models"
)

// Gateway is the remote surface consumed by the session manager and the
// feed synchronizer. Implementations map failures onto the sentinel
// errors in internal/common.
type Gateway interface {
	// CreateSession exchanges an identifier/secret pair for a token pair.
	CreateSession(ctx context.Context, identifier, secret string) (models.Credentials, error)

	// RefreshSession exchanges a refresh token for a new token pair.
	RefreshSession(ctx context.Context, refreshToken string) (models.Credentials, error)

	// Timeline fetches one page of the feed. cursor may be "" for the
	// start of the feed.
	Timeline(ctx context.Context, accessToken string, limit int, cursor string) (models.TimelineResponse, error)
}
