package models

// Credentials is the token pair returned by the session endpoints.
// RefreshJWT may be empty; the wire field names are the server's.
type Credentials struct {
	AccessJWT  string `json:"accessJwt"`
	RefreshJWT string `json:"refreshJwt,omitempty"`
}

// TimelineResponse is the body of a feed fetch. Cursor is nil when the
// server returned no continuation marker.
type TimelineResponse struct {
	Cursor *string    `json:"cursor,omitempty"`
	Feed   []FeedItem `json:"feed"`
}
