package mysportsfeeds

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/metrics"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/resilience"
	"github.com/riskibarqy/nfl-draft-league/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL    = "https://api.mysportsfeeds.com/v2.1/pull/nfl"
	defaultSeason     = "2024-2025-regular"
	defaultOddsSource = "bovada"
	defaultTimeout    = 20 * time.Second
	defaultRetryDelay = time.Second
	// MySportsFeeds authenticates with the API key as user and a fixed password.
	basicAuthPassword = "MYSPORTSFEEDS"
	maxResponseBytes  = 6 << 20
	providerName      = "mysportsfeeds"
)

var errProviderTransient = crerr.New("mysportsfeeds transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Season         string
	APIKey         string
	OddsSource     string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls NFL feeds from MySportsFeeds and maps them to ingestion
// records.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	season         string
	apiKey         string
	authHeader     string
	oddsSource     string
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight[[]byte]
	sleep          func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "nfl-draft-league",
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	season := strings.Trim(strings.TrimSpace(cfg.Season), "/")
	if season == "" {
		season = defaultSeason
	}
	oddsSource := strings.ToLower(strings.TrimSpace(cfg.OddsSource))
	if oddsSource == "" {
		oddsSource = defaultOddsSource
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		metrics.SetCircuitOpen(providerName, to == resilience.CircuitStateOpen)
		logger.Warn("mysportsfeeds circuit breaker state changed", "from", from, "to", to)
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		season:         season,
		apiKey:         apiKey,
		authHeader:     basicAuthHeader(apiKey),
		oddsSource:     oddsSource,
		timeout:        timeout,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		retryDelay:     retryDelay,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		sleep:          sleepContext,
	}
}

func (c *Client) FetchGamesByDate(ctx context.Context, date time.Time) ([]usecase.ExternalGame, error) {
	path := "/date/" + date.Format("20060102") + "/games.json"
	var payload gamesEnvelope
	if err := c.doJSON(ctx, "games", path, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch games date=%s: %w", date.Format("2006-01-02"), err)
	}
	return mapGames(payload), nil
}

func (c *Client) FetchGameLinesByWeek(ctx context.Context, week int) ([]usecase.ExternalGameLines, error) {
	if week <= 0 {
		return nil, fmt.Errorf("week must be greater than zero")
	}
	path := "/week/" + strconv.Itoa(week) + "/odds_gamelines.json"
	var payload gameLinesEnvelope
	if err := c.doJSON(ctx, "odds_gamelines", path, map[string]string{"source": c.oddsSource}, &payload); err != nil {
		return nil, fmt.Errorf("fetch game lines week=%d: %w", week, err)
	}
	return mapGameLines(payload), nil
}

func (c *Client) FetchStandings(ctx context.Context) ([]usecase.ExternalStanding, error) {
	var payload standingsEnvelope
	if err := c.doJSON(ctx, "standings", "/standings.json", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}
	return mapStandings(payload), nil
}

func (c *Client) FetchTeamStats(ctx context.Context) ([]usecase.ExternalTeamStats, error) {
	var payload teamStatsEnvelope
	if err := c.doJSON(ctx, "team_stats_totals", "/team_stats_totals.json", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch team stats: %w", err)
	}
	return mapTeamStats(payload), nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "mysportsfeeds circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sport data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + "/" + c.season + path
	if len(query) > 0 {
		values := url.Values{}
		for key, value := range query {
			values.Set(key, value)
		}
		fullURL += "?" + values.Encode()
	}

	started := time.Now()
	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isProviderCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		metrics.ObserveProviderCall(endpoint, "error", started)
		return err
	}
	metrics.ObserveProviderCall(endpoint, "ok", started)

	if len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

// executeRequest retries transient failures with a linear backoff of
// retryDelay times the attempt number.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		body, err := c.get(ctx, fullURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !stderrors.Is(err, errProviderTransient) {
			break
		}
		if attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * c.retryDelay
		c.logger.DebugContext(ctx, "retrying mysportsfeeds request", "url", fullURL, "attempt", attempt+1, "backoff", backoff.String())
		if err := c.sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}

	c.logger.WarnContext(ctx, "mysportsfeeds request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errProviderTransient, c.sanitize(err.Error()))
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	switch {
	case status == fasthttp.StatusNoContent:
		return nil, nil
	case status >= 200 && status < 300:
		return body, nil
	case isRetryableStatus(status):
		return nil, fmt.Errorf("%w: provider status=%d body=%s", errProviderTransient, status, c.sanitize(abbreviateBody(body)))
	default:
		return nil, fmt.Errorf("provider status=%d body=%s", status, c.sanitize(abbreviateBody(body)))
	}
}

// sanitize strips the API key and the encoded credentials from text that may
// end up in logs or job results.
func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.apiKey == "" || value == "" {
		return value
	}
	value = strings.ReplaceAll(value, strings.TrimPrefix(c.authHeader, "Basic "), "REDACTED")
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}

func basicAuthHeader(apiKey string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(apiKey+":"+basicAuthPassword))
}

func isProviderCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errProviderTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
