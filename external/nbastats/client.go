package nbastats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/hoopcast/nba-ingest/internal/platform/logging"
	"github.com/hoopcast/nba-ingest/internal/platform/resilience"
	"github.com/hoopcast/nba-ingest/internal/usecase"
)

const (
	defaultBaseURL      = "https://stats.nba.com/stats"
	defaultTimeout      = 30 * time.Second
	defaultRequestDelay = 600 * time.Millisecond
	defaultRetryBackoff = time.Second
	leagueGameFinder    = "/leaguegamefinder"
	leagueIDNBA         = "00"
	SeasonTypeRegular   = "Regular Season"
	maxResponseBytes    = 16 << 20
	userAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:72.0) Gecko/20100101 Firefox/72.0"
)

var errNBAStatsTransient = crerr.New("nba stats transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	// RequestDelay is slept before every season request to stay under the
	// provider's rate limit.
	RequestDelay   time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	SeasonType     string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads team game logs from the stats.nba.com leaguegamefinder endpoint.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	requestDelay time.Duration
	maxRetries   int
	retryBackoff time.Duration
	seasonType   string
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
	sleep        func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	seasonType := strings.TrimSpace(cfg.SeasonType)
	if seasonType == "" {
		seasonType = SeasonTypeRegular
	}

	breaker := resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker, func(from, to resilience.CircuitState) {
		logger.Warn("nba stats circuit breaker state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		requestDelay: max(cfg.RequestDelay, 0),
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: retryBackoff,
		seasonType:   seasonType,
		logger:       logger,
		breaker:      breaker,
		sleep:        sleepContext,
	}
}

// FetchSeasonGames returns one row per team per game for the season starting
// in the given year. The request is preceded by the configured pacing delay.
func (c *Client) FetchSeasonGames(ctx context.Context, season int) ([]usecase.ExternalGameRow, error) {
	label, err := SeasonLabel(season)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	if err := c.sleep(ctx, c.requestDelay); err != nil {
		return nil, fmt.Errorf("%w: pacing delay for season %s: %w", usecase.ErrSourceFetch, label, err)
	}

	query := url.Values{}
	query.Set("LeagueID", leagueIDNBA)
	query.Set("PlayerOrTeam", "T")
	query.Set("Season", label)
	query.Set("SeasonType", c.seasonType)

	var envelope resultSetEnvelope
	if err := c.doJSON(ctx, leagueGameFinder, query, &envelope); err != nil {
		return nil, fmt.Errorf("%w: season %s: %w", usecase.ErrSourceFetch, label, err)
	}

	rows, err := envelope.gameRows()
	if err != nil {
		return nil, fmt.Errorf("%w: season %s: %w", usecase.ErrSourceFetch, label, err)
	}

	c.logger.DebugContext(ctx, "nba stats season fetched", "season", label, "rows", len(rows))
	return rows, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := c.breaker.Do(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	}, isCircuitFailure)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "nba stats circuit breaker rejected request", "state", string(c.breaker.State()))
		}
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		setProviderHeaders(req.Header)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errNBAStatsTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errNBAStatsTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errNBAStatsTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		c.logger.WarnContext(ctx, "nba stats request failed, retrying", "attempt", attempt+1, "error", lastErr)
		if err := sleepContext(ctx, time.Duration(attempt+1)*c.retryBackoff); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	return nil, lastErr
}

// setProviderHeaders mimics a browser; stats.nba.com drops requests without them.
func setProviderHeaders(h http.Header) {
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Origin", "https://www.nba.com")
	h.Set("Pragma", "no-cache")
	h.Set("Referer", "https://www.nba.com/")
	h.Set("User-Agent", userAgent)
	h.Set("x-nba-stats-origin", "stats")
	h.Set("x-nba-stats-token", "true")
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errNBAStatsTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
