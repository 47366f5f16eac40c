// Package maverick implements a typed client for the Maverick
// site-management REST API.
package maverick

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/appianeng/maverick-mcp/internal/common"
)

const (
	// DefaultBaseURL is the staging control plane, overridable via config.
	DefaultBaseURL = "https://maverick-staging.appiancloud.com"

	sitesPath   = "/suite/webapi/sites"
	resizesPath = "/suite/webapi/resizes"

	// defaultTimeout mirrors the upstream's own 30 second request limit.
	defaultTimeout = 30 * time.Second

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// Client calls the Maverick REST API. The API token travels as the
// appian-api-key header on every request and is never written to logs
// or error messages.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a Maverick API client. An empty baseURL falls back
// to DefaultBaseURL; a non-positive timeout falls back to 30 seconds.
func NewClient(baseURL, apiToken string, timeout time.Duration, logger *common.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CreateSite submits a new site request. With dryRun set the upstream
// only validates; it signals a clean dry run with a 405.
func (c *Client) CreateSite(ctx context.Context, body map[string]any, dryRun bool) (*CreateResult, error) {
	q := url.Values{}
	if dryRun {
		q.Set("dryRun", "true")
	}

	status, _, respBody, err := c.do(ctx, http.MethodPost, sitesPath, q, body)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusCreated:
		return &CreateResult{Message: messageField(respBody, "Site created")}, nil
	case http.StatusMethodNotAllowed:
		return &CreateResult{DryRun: true}, nil
	}
	return nil, c.errorFromStatus(status, respBody)
}

// QuerySites lists sites matching the query filters. An empty result
// page (200 with an empty array, or 204) yields a QueryResult with no
// sites rather than an error.
func (c *Client) QuerySites(ctx context.Context, query SiteQuery) (*QueryResult, error) {
	status, header, body, err := c.do(ctx, http.MethodGet, sitesPath, query.Values(), nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var sites []Site
		if err := json.Unmarshal(body, &sites); err != nil {
			return nil, fmt.Errorf("decode site list: %w", err)
		}
		total := header.Get("X-Total-Count")
		if total == "" {
			total = "Unknown"
		}
		return &QueryResult{Sites: sites, TotalCount: total}, nil
	case http.StatusNoContent:
		return &QueryResult{}, nil
	}
	return nil, c.errorFromStatus(status, body)
}

// GetSiteByIdentifier fetches a site by numeric ID or by name. When a
// name matches several sites the upstream returns an array; the lookup
// result records which shape arrived.
func (c *Client) GetSiteByIdentifier(ctx context.Context, identifier string) (*SiteLookup, error) {
	path := sitesPath + "/" + url.PathEscape(identifier)

	status, _, body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			var sites []Site
			if err := json.Unmarshal(trimmed, &sites); err != nil {
				return nil, fmt.Errorf("decode site list: %w", err)
			}
			return &SiteLookup{Sites: sites}, nil
		}
		var site Site
		if err := json.Unmarshal(trimmed, &site); err != nil {
			return nil, fmt.Errorf("decode site: %w", err)
		}
		return &SiteLookup{Sites: []Site{site}, Single: true}, nil
	case http.StatusNotFound:
		return nil, &NotFoundError{Identifier: identifier}
	}
	return nil, c.errorFromStatus(status, body)
}

// ManageSite applies a management action to a site addressed by ID or
// name. The body must come from BuildManageBody; lifecycle actions pass
// nil. A 405 on a dry run means validation passed.
func (c *Client) ManageSite(ctx context.Context, identifier string, action Action, body map[string]any, dryRun bool) (*ManageResult, error) {
	q := url.Values{}
	q.Set("action", string(action))
	if dryRun {
		q.Set("dryRun", "true")
	}
	path := sitesPath + "/" + url.PathEscape(identifier)

	status, _, respBody, err := c.do(ctx, http.MethodPut, path, q, body)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		return &ManageResult{Message: messageField(respBody, "")}, nil
	case http.StatusForbidden:
		return nil, &AmbiguousNameError{Identifier: identifier}
	case http.StatusNotFound:
		return nil, &NotFoundError{Identifier: identifier}
	case http.StatusMethodNotAllowed:
		return &ManageResult{DryRun: true}, nil
	}
	return nil, c.errorFromStatus(status, respBody)
}

// GetResizeStatus reports the phase of an in-flight volume resize. A 404
// means no resize is running, which is a normal outcome, so it returns
// (nil, nil) rather than an error.
func (c *Client) GetResizeStatus(ctx context.Context, siteID string) (*ResizeStatus, error) {
	path := resizesPath + "/" + url.PathEscape(siteID)

	status, _, body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var rs ResizeStatus
		if err := json.Unmarshal(body, &rs); err != nil {
			return nil, fmt.Errorf("decode resize status: %w", err)
		}
		if rs.Phase == "" {
			rs.Phase = "Unknown"
		}
		if rs.LastVolumeModificationTime == "" {
			rs.LastVolumeModificationTime = "Unknown"
		}
		return &rs, nil
	case http.StatusNotFound:
		return nil, nil
	}
	return nil, c.errorFromStatus(status, body)
}

// do performs one round trip and returns the status, headers and body.
// Transport failures come back as *NetworkError; HTTP error statuses are
// left to the caller since their meaning differs per endpoint.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body map[string]any) (int, http.Header, []byte, error) {
	log := c.logger
	if id, ok := common.CorrelationID(ctx); ok {
		log = log.WithCorrelationId(id)
	}

	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("query", query.Encode()).
		Msg("Maverick API Request")

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("appian-api-key", c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error().Err(err).Str("path", path).Dur("duration", duration).Msg("Maverick API Request Failed")
		return 0, nil, nil, &NetworkError{Err: err, Timeout: isTimeout(err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Int("bytes", len(respBody)).
		Dur("duration", duration).
		Msg("Maverick API Response")

	return resp.StatusCode, resp.Header, respBody, nil
}

// errorFromStatus maps failure statuses shared by every endpoint onto
// the error taxonomy.
func (c *Client) errorFromStatus(status int, body []byte) error {
	if status == http.StatusBadRequest {
		return &ValidationError{Messages: upstreamErrors(body)}
	}
	return &ServerError{StatusCode: status, Body: strings.TrimSpace(string(body))}
}

// upstreamErrors extracts the errors array from a 400 response body.
func upstreamErrors(body []byte) []string {
	var resp struct {
		Errors []string `json:"errors"`
	}
	if json.Unmarshal(body, &resp) == nil && len(resp.Errors) > 0 {
		return resp.Errors
	}
	return []string{"Validation error"}
}

// messageField extracts the message field from a JSON response body.
func messageField(body []byte, fallback string) string {
	var resp struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &resp) == nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
