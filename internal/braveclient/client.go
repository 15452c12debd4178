// Package braveclient is the HTTP client that talks to the Brave Search
// API: request construction, per-attempt timeouts, bounded retries with
// jittered backoff, response-size limiting, and payload parsing.
package braveclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bravesearch/bravesearchd/internal/apierrors"
	"github.com/bravesearch/bravesearchd/internal/braveconf"
	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

// ServerVersion is embedded in the client's User-Agent header.
const ServerVersion = "0.1.0"

// Client talks to the Brave Search API on behalf of the pipeline.
type Client struct {
	http   *http.Client
	config braveconf.RuntimeConfig
	apiKey braveconf.APIKeyConfig
}

// New creates a Client bound to config, resolving the API key from the
// environment.
func New(config braveconf.RuntimeConfig) *Client {
	return &Client{
		http:   &http.Client{},
		config: config,
		apiKey: braveconf.LoadAPIKeyFromEnv(),
	}
}

// KeyConfig returns the resolved API key configuration.
func (c *Client) KeyConfig() braveconf.APIKeyConfig { return c.apiKey }

// Config returns the client's runtime configuration.
func (c *Client) Config() braveconf.RuntimeConfig { return c.config }

// FetchSearch performs a single logical search call against search_type's
// endpoint, retrying transient failures up to config.RetryCount times.
// isCancelled is polled before every attempt and while waiting out a retry
// delay. It is not polled while a response body is being read; that read
// ends only when the body is done, ctx is cancelled, or the per-attempt
// timeout fires.
func (c *Client) FetchSearch(ctx context.Context, query string, searchType bravetypes.SearchType, params bravetypes.FetchSearchParams, isCancelled func() bool) (bravetypes.FetchSearchResult, error) {
	if !c.apiKey.HasKey() {
		return bravetypes.FetchSearchResult{}, apierrors.MissingAPIKey()
	}

	requestURL, err := c.buildRequestURL(query, searchType, params)
	if err != nil {
		return bravetypes.FetchSearchResult{}, err
	}

	var lastErr error
	var lastStatus int
	var lastBody string

	for attempt := 0; attempt <= c.config.RetryCount; attempt++ {
		if isCancelled() {
			return bravetypes.FetchSearchResult{}, apierrors.Cancelled()
		}

		status, retryAfter, body, attemptErr := c.doAttempt(ctx, requestURL)
		if attemptErr != nil {
			lastErr = attemptErr
			if attempt < c.config.RetryCount {
				if err := c.waitForRetry("", attempt, isCancelled); err != nil {
					return bravetypes.FetchSearchResult{}, err
				}
				continue
			}
			break
		}

		lastErr = nil
		lastStatus = status
		lastBody = body

		if status >= 200 && status < 300 {
			var payload map[string]any
			if err := json.Unmarshal([]byte(body), &payload); err != nil {
				return bravetypes.FetchSearchResult{}, apierrors.Parse(fmt.Sprintf("Invalid JSON response: %v", err))
			}

			parsed := ParseSections(payload, searchType, params.ResultFilterValues, params.Count, params.TextDecorations)

			return bravetypes.FetchSearchResult{
				Sections:        parsed.Sections,
				HasMore:         parsed.HasMore,
				Warnings:        parsed.Warnings,
				QueryEcho:       QueryEchoOrOriginal(payload, query),
				RequestURL:      requestURL,
				RawPayload:      payload,
				RawPayloadBytes: len(body),
			}, nil
		}

		if bravetypes.RetryableHTTPStatus[status] && attempt < c.config.RetryCount {
			if err := c.waitForRetry(retryAfter, attempt, isCancelled); err != nil {
				return bravetypes.FetchSearchResult{}, err
			}
			continue
		}

		fallback := fmt.Sprintf("Request failed (%d).", status)
		detail := ParseBraveErrorMessage(body, fallback)
		return bravetypes.FetchSearchResult{}, apierrors.Upstream(fmt.Sprintf("Brave Search API returned HTTP %d: %s", status, detail))
	}

	if lastErr != nil {
		return bravetypes.FetchSearchResult{}, lastErr
	}
	if lastStatus != 0 {
		fallback := fmt.Sprintf("Request failed (%d).", lastStatus)
		detail := ParseBraveErrorMessage(lastBody, fallback)
		return bravetypes.FetchSearchResult{}, apierrors.Upstream(fmt.Sprintf("Brave Search API returned HTTP %d: %s", lastStatus, detail))
	}
	return bravetypes.FetchSearchResult{}, apierrors.Internal("Brave request loop exited without a result")
}

// doAttempt performs one HTTP round trip, enforcing the per-attempt
// timeout on both the request and the body read.
func (c *Client) doAttempt(ctx context.Context, requestURL string) (status int, retryAfter string, body string, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, time.Duration(c.config.PerAttemptTimeoutMS)*time.Millisecond)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, "", "", apierrors.Internal(fmt.Sprintf("Failed to build request: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey.Key)
	req.Header.Set("User-Agent", "bravesearchd/"+ServerVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		if attemptCtx.Err() != nil {
			return 0, "", "", apierrors.Upstream("Per-attempt timeout waiting for Brave API response")
		}
		return 0, "", "", apierrors.Upstream(fmt.Sprintf("Failed to call Brave API: %v", err))
	}
	defer resp.Body.Close()

	retryAfter = resp.Header.Get("Retry-After")

	raw, err := c.readResponseBody(resp.Body)
	if err != nil {
		if attemptCtx.Err() != nil {
			return 0, "", "", apierrors.Upstream("Per-attempt timeout reading Brave API response")
		}
		return 0, "", "", err
	}

	return resp.StatusCode, retryAfter, raw, nil
}

// readResponseBody streams the body, rejecting it once it exceeds
// MaxResponseBytes rather than buffering an unbounded payload.
func (c *Client) readResponseBody(body io.Reader) (string, error) {
	limited := io.LimitReader(body, int64(c.config.MaxResponseBytes)+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", apierrors.Upstream(fmt.Sprintf("Failed while reading response body: %v", err))
	}
	if len(data) > c.config.MaxResponseBytes {
		maxMebibytes := float64(c.config.MaxResponseBytes) / 1_048_576.0
		return "", apierrors.Upstream(fmt.Sprintf("Response body exceeded %d byte limit (%.2f MiB)", c.config.MaxResponseBytes, maxMebibytes))
	}
	return string(data), nil
}

func (c *Client) waitForRetry(retryAfterHeader string, attempt int, isCancelled func() bool) error {
	delayMS := ComputeRetryDelayMS(attempt, retryAfterHeader, c.config.RetryBaseDelayMS, c.config.RetryMaxDelayMS)
	totalWait := time.Duration(delayMS) * time.Millisecond
	step := 100 * time.Millisecond

	start := time.Now()
	for time.Since(start) < totalWait {
		if isCancelled() {
			return apierrors.Cancelled()
		}
		remaining := totalWait - time.Since(start)
		sleep := step
		if remaining < sleep {
			sleep = remaining
		}
		time.Sleep(sleep)
	}
	return nil
}

func (c *Client) buildRequestURL(query string, searchType bravetypes.SearchType, params bravetypes.FetchSearchParams) (string, error) {
	endpoint := c.config.Endpoints.EndpointFor(searchType)
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", apierrors.Internal(fmt.Sprintf("Invalid endpoint URL '%s': %v", endpoint, err))
	}

	var pairs [][2]string
	for key, values := range parsed.Query() {
		for _, v := range values {
			pairs = append(pairs, [2]string{key, v})
		}
	}

	pairs = append(pairs,
		[2]string{"q", query},
		[2]string{"count", strconv.Itoa(params.Count)},
		[2]string{"text_decorations", strconv.FormatBool(params.TextDecorations)},
		[2]string{"extra_snippets", strconv.FormatBool(params.ExtraSnippets)},
	)

	if params.Offset > 0 {
		pairs = append(pairs, [2]string{"offset", strconv.Itoa(params.Offset)})
	}
	if params.Country != nil {
		pairs = append(pairs, [2]string{"country", *params.Country})
	}
	if params.SearchLanguage != nil {
		pairs = append(pairs, [2]string{"search_lang", *params.SearchLanguage})
	}
	if params.UILanguage != nil {
		pairs = append(pairs, [2]string{"ui_lang", *params.UILanguage})
	}
	if params.Units != nil {
		pairs = append(pairs, [2]string{"units", *params.Units})
	}
	if params.SafeSearch != nil {
		pairs = append(pairs, [2]string{"safesearch", *params.SafeSearch})
	}
	if params.Freshness != nil {
		pairs = append(pairs, [2]string{"freshness", *params.Freshness})
	}
	pairs = append(pairs, [2]string{"spellcheck", strconv.FormatBool(params.Spellcheck)})

	if searchType == bravetypes.SearchTypeWeb && len(params.ResultFilterValues) > 0 {
		filters := make([]string, len(params.ResultFilterValues))
		for i, f := range params.ResultFilterValues {
			filters[i] = string(f)
		}
		pairs = append(pairs, [2]string{"result_filter", joinComma(filters)})
	}

	parsed.RawQuery = encodeOrderedQuery(pairs)
	return parsed.String(), nil
}

// encodeOrderedQuery encodes pairs as a query string in insertion order,
// unlike url.Values.Encode which sorts keys alphabetically.
func encodeOrderedQuery(pairs [][2]string) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}

func joinComma(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}

// ProbeEndpoint issues a minimal, 1-result search against searchType's
// endpoint to verify connectivity and key validity, for the status tool.
func (c *Client) ProbeEndpoint(ctx context.Context, searchType bravetypes.SearchType, isCancelled func() bool) error {
	params := bravetypes.FetchSearchParams{
		Count:           1,
		Spellcheck:      true,
		TextDecorations: searchType == bravetypes.SearchTypeNews,
	}
	_, err := c.FetchSearch(ctx, "mcp healthcheck", searchType, params, isCancelled)
	return err
}
