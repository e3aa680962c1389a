package breach

import (
	"context"
	"crypto/sha1" //nolint:gosec // The k-anonymity protocol mandates SHA-1
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/passaudit/internal/model"
)

// Digest geometry of the k-anonymity protocol: a 40-hex-character SHA-1
// digest split into a 5-character prefix (the only part transmitted) and a
// 35-character suffix (compared locally).
const (
	// PrefixLength is the number of leading hex digits sent to the range
	// endpoint.
	PrefixLength = 5

	// suffixLength is the number of trailing hex digits compared against
	// the response body.
	suffixLength = 35

	// maxRangeBody bounds the response body read. Range responses are
	// typically under 50KB; 4MB leaves generous headroom while preventing
	// memory exhaustion from a misbehaving endpoint.
	maxRangeBody = 4 * 1024 * 1024
)

// HashPrefix returns the 5-hex-character, uppercase SHA-1 prefix for a
// password. This is the only password-derived value that may leave the
// process; it is also used as the privacy-safe reference key for stored
// analysis history.
func HashPrefix(password string) string {
	prefix, _ := splitDigest(password)
	return prefix
}

// splitDigest computes the uppercase SHA-1 digest of the password and splits
// it into the transmitted prefix and the locally kept suffix.
func splitDigest(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password)) //nolint:gosec // Protocol requirement
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	return digest[:PrefixLength], digest[PrefixLength:]
}

// RangeFetcher fetches the breach-service response body for a hash prefix.
//
// Design decision: The online lookup is capability-abstracted behind this
// one-method interface so that tests can substitute a deterministic
// in-memory responder. Production wiring supplies HTTPRangeFetcher.
type RangeFetcher interface {
	// FetchRange returns the text/plain body for the given 5-character
	// hex prefix: newline-delimited "SUFFIX:COUNT" lines.
	FetchRange(ctx context.Context, prefix string) (string, error)
}

// HTTPRangeFetcher is the production RangeFetcher backed by net/http.
type HTTPRangeFetcher struct {
	// client performs the request. Defaults to http.DefaultClient.
	client *http.Client

	// endpoint is the range endpoint base URL, without a trailing slash.
	endpoint string

	// userAgent identifies this tool to the breach service, which
	// requires a User-Agent header.
	userAgent string
}

// HTTPRangeFetcherOption configures an HTTPRangeFetcher.
type HTTPRangeFetcherOption func(*HTTPRangeFetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPRangeFetcherOption {
	return func(f *HTTPRangeFetcher) {
		f.client = client
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) HTTPRangeFetcherOption {
	return func(f *HTTPRangeFetcher) {
		f.userAgent = ua
	}
}

// NewHTTPRangeFetcher creates a fetcher for the given range endpoint base
// URL (for example "https://api.pwnedpasswords.com/range").
func NewHTTPRangeFetcher(endpoint string, opts ...HTTPRangeFetcherOption) *HTTPRangeFetcher {
	f := &HTTPRangeFetcher{
		client:    http.DefaultClient,
		endpoint:  strings.TrimSuffix(endpoint, "/"),
		userAgent: "passaudit (+https://github.com/nao1215/passaudit)",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchRange issues a single GET for the prefix's range. Non-2xx responses
// are errors; the body is size-bounded.
func (f *HTTPRangeFetcher) FetchRange(ctx context.Context, prefix string) (string, error) {
	url := f.endpoint + "/" + prefix
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create range request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("range request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("range request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRangeBody))
	if err != nil {
		return "", fmt.Errorf("failed to read range response: %w", err)
	}
	return string(body), nil
}

// OnlineChecker performs the k-anonymity breach lookup.
//
// Privacy invariant: the raw password and the full digest never leave the
// process; only the 5-character prefix is handed to the RangeFetcher.
type OnlineChecker struct {
	fetcher RangeFetcher
	timeout time.Duration
	logger  *slog.Logger
}

// OnlineCheckerOption configures an OnlineChecker.
type OnlineCheckerOption func(*OnlineChecker)

// WithTimeout bounds each lookup. After the timeout the lookup counts as
// failed, never as a hang. Default is 5 seconds.
func WithTimeout(timeout time.Duration) OnlineCheckerOption {
	return func(c *OnlineChecker) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithOnlineLogger sets a custom logger for lookup diagnostics.
func WithOnlineLogger(logger *slog.Logger) OnlineCheckerOption {
	return func(c *OnlineChecker) {
		c.logger = logger
	}
}

// NewOnlineChecker creates an OnlineChecker using the given fetcher.
func NewOnlineChecker(fetcher RangeFetcher, opts ...OnlineCheckerOption) *OnlineChecker {
	c := &OnlineChecker{
		fetcher: fetcher,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Check runs one k-anonymity lookup and fills in the online fields of a
// BreachResult. Failures (network error, timeout, non-success status,
// malformed body) leave OnlineChecked false and are never fatal to the
// caller: this degradation is recorded in the result, not returned.
func (c *OnlineChecker) Check(ctx context.Context, password string) model.BreachResult {
	prefix, suffix := splitDigest(password)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.fetcher.FetchRange(ctx, prefix)
	if err != nil {
		c.logger.Debug("online breach lookup failed", "error", err)
		return model.BreachResult{}
	}

	hit, count, err := scanRange(body, suffix)
	if err != nil {
		c.logger.Debug("online breach lookup returned malformed body", "error", err)
		return model.BreachResult{}
	}

	result := model.BreachResult{
		OnlineChecked: true,
		OnlineHit:     hit,
	}
	if hit {
		result.OnlineCount = &count
	}
	return result
}

// scanRange scans the response body for the locally computed suffix.
// Each line must be "SUFFIX:COUNT" with a hexadecimal suffix and a decimal
// count; suffix comparison is case-insensitive. A line that does not parse
// makes the whole body malformed.
func scanRange(body, suffix string) (hit bool, count uint64, err error) {
	for line := range strings.Lines(body) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		candidate, countText, ok := strings.Cut(line, ":")
		if !ok || len(candidate) != suffixLength {
			return false, 0, fmt.Errorf("malformed range line %q", line)
		}

		if !strings.EqualFold(candidate, suffix) {
			continue
		}

		count, err = strconv.ParseUint(strings.TrimSpace(countText), 10, 64)
		if err != nil {
			return false, 0, fmt.Errorf("malformed count in range line %q: %w", line, err)
		}
		return true, count, nil
	}
	return false, 0, nil
}
