package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gaulatti/cirrus/internal/client/models"
	"github.com/gaulatti/cirrus/internal/common"
)

const (
	createSessionPath  = "/xrpc/com.atproto.server.createSession"
	refreshSessionPath = "/xrpc/com.atproto.server.refreshSession"
	getTimelinePath    = "/xrpc/app.bsky.feed.getTimeline"
)

// HTTPGateway talks to a Bluesky-compatible service over HTTP+JSON.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway builds a gateway for the given service base URL.
// Every request carries the finite timeout.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type createSessionRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type refreshSessionRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (g *HTTPGateway) CreateSession(ctx context.Context, identifier, secret string) (models.Credentials, error) {
	return g.postSession(ctx, createSessionPath, createSessionRequest{Identifier: identifier, Password: secret}, common.ErrAuthenticationFailed)
}

func (g *HTTPGateway) RefreshSession(ctx context.Context, refreshToken string) (models.Credentials, error) {
	return g.postSession(ctx, refreshSessionPath, refreshSessionRequest{RefreshToken: refreshToken}, common.ErrRefreshFailed)
}

// postSession POSTs a JSON body to a session endpoint and decodes the
// returned token pair. Non-2xx statuses map to failSentinel so callers
// can distinguish login failures from refresh failures with errors.Is.
func (g *HTTPGateway) postSession(ctx context.Context, path string, payload any, failSentinel error) (models.Credentials, error) {
	var creds models.Credentials

	body, err := json.Marshal(payload)
	if err != nil {
		return creds, fmt.Errorf("marshaling %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return creds, fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return creds, fmt.Errorf("%w: %s: %v", common.ErrNetwork, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return creds, fmt.Errorf("%w: reading %s response: %v", common.ErrNetwork, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return creds, fmt.Errorf("%w: %s returned %d: %s", failSentinel, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, &creds); err != nil {
		return creds, fmt.Errorf("%w: decoding %s response: %v", common.ErrDecode, path, err)
	}
	if creds.AccessJWT == "" {
		return creds, fmt.Errorf("%w: %s response carries no access token", common.ErrDecode, path)
	}
	return creds, nil
}

func (g *HTTPGateway) Timeline(ctx context.Context, accessToken string, limit int, cursor string) (models.TimelineResponse, error) {
	var tl models.TimelineResponse

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+getTimelinePath+"?"+q.Encode(), nil)
	if err != nil {
		return tl, fmt.Errorf("building timeline request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return tl, fmt.Errorf("%w: timeline fetch: %v", common.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return tl, fmt.Errorf("%w: reading timeline response: %v", common.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return tl, fmt.Errorf("%w: timeline fetch returned %d: %s", common.ErrNetwork, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, &tl); err != nil {
		return tl, fmt.Errorf("%w: decoding timeline response: %v", common.ErrDecode, err)
	}
	return tl, nil
}
