package jobqueue

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
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
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	qstashMetricName = "qstash"
	maxLoggedBody    = 4096
)

var errQStashTransient = crerr.New("qstash transient failure")

type QStashPublisherConfig struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	CircuitBreaker   resilience.CircuitBreakerConfig
}

// QStashPublisher enqueues internal job routes on Upstash QStash. QStash
// later POSTs the payload back to TargetBaseURL+path, forwarding the
// internal job token header.
type QStashPublisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	logger           *logging.Logger
	breaker          *resilience.CircuitBreaker
}

// publishRequest is one job delivery as QStash sees it.
type publishRequest struct {
	publishURL      string
	targetURL       string
	path            string
	body            []byte
	delay           string
	deduplicationID string
}

func NewQStashPublisher(cfg QStashPublisherConfig, logger *logging.Logger) *QStashPublisher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	publisher := &QStashPublisher{
		client:           &http.Client{Timeout: cfg.Timeout},
		baseURL:          strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/"),
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		logger:           logger.With("component", "qstash"),
	}

	if cfg.CircuitBreaker.Enabled {
		breakerCfg := cfg.CircuitBreaker
		breakerCfg.OnStateChange = func(_, to resilience.CircuitState) {
			metrics.SetCircuitOpen(qstashMetricName, to == resilience.CircuitStateOpen)
		}
		publisher.breaker = resilience.NewCircuitBreaker(breakerCfg)
	}

	return publisher
}

// Enqueue implements usecase.JobQueue.
func (p *QStashPublisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	if p.breaker != nil {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", p.breaker.State(), "path", path)
			return fmt.Errorf("%w: qstash is temporarily unavailable: %w", usecase.ErrDependencyUnavailable, err)
		}
	}

	req, err := p.newPublishRequest(path, payload, delay, deduplicationID)
	if err != nil {
		return err
	}

	started := time.Now()
	err = p.send(ctx, req)
	p.observe(err, started)
	if err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "qstash job published", "path", req.path, "delay", req.delay, "deduplication_id", req.deduplicationID)
	return nil
}

func (p *QStashPublisher) newPublishRequest(path string, payload any, delay time.Duration, deduplicationID string) (publishRequest, error) {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return publishRequest{}, crerr.New("job path is required")
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		return publishRequest{}, crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(p.targetBaseURL)
	if err != nil {
		return publishRequest{}, crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}

	if payload == nil {
		payload = map[string]any{}
	}
	body, err := sonic.Marshal(payload)
	if err != nil {
		return publishRequest{}, crerr.Wrap(err, "marshal job payload")
	}

	targetURL := targetBaseURL + path
	return publishRequest{
		publishURL:      baseURL + "/v2/publish/" + targetURL,
		targetURL:       targetURL,
		path:            path,
		body:            body,
		delay:           normalizeDelay(delay),
		deduplicationID: strings.TrimSpace(deduplicationID),
	}, nil
}

func (p *QStashPublisher) send(ctx context.Context, pr publishRequest) error {
	bodyText := truncateForLog(string(pr.body), maxLoggedBody)
	curlPreview := buildQStashCurlPreview(pr.publishURL, pr.path, pr.delay, p.retries, pr.deduplicationID, bodyText, p.internalJobToken != "")

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.target_url", pr.targetURL),
			attribute.String("qstash.path", pr.path),
			attribute.String("qstash.deduplication_id", pr.deduplicationID),
			attribute.String("qstash.request_curl_preview", curlPreview),
		)
	}
	p.logger.DebugContext(ctx, "qstash publish request", "path", pr.path, "target_url", pr.targetURL, "curl_preview", curlPreview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pr.publishURL, bytes.NewReader(pr.body))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	p.setHeaders(req, pr)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: publish %s: %v", errQStashTransient, pr.targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 == 2 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	detail := fmt.Sprintf("publish %s: status=%d body=%s", pr.targetURL, resp.StatusCode, strings.TrimSpace(string(raw)))
	if isQStashRetryableStatus(resp.StatusCode) {
		return fmt.Errorf("%w: %s", errQStashTransient, detail)
	}
	return crerr.New(detail)
}

func (p *QStashPublisher) setHeaders(req *http.Request, pr publishRequest) {
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if pr.delay != "0s" {
		req.Header.Set("Upstash-Delay", pr.delay)
	}
	if pr.deduplicationID != "" {
		req.Header.Set("Upstash-Deduplication-Id", pr.deduplicationID)
	}
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-X-Internal-Job-Token", p.internalJobToken)
	}
}

// observe feeds the breaker and the provider metrics. Only transient
// failures count against the breaker; a 4xx means the request itself is bad.
func (p *QStashPublisher) observe(err error, started time.Time) {
	status := "ok"
	switch {
	case err == nil:
	case isQStashCircuitFailure(err):
		status = "transient_error"
	default:
		status = "error"
	}
	metrics.ObserveProviderCall(qstashMetricName, status, started)

	if p.breaker == nil {
		return
	}
	if status == "transient_error" {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func normalizeDelay(delay time.Duration) string {
	seconds := int(delay.Round(time.Second).Seconds())
	if seconds <= 0 {
		return "0s"
	}
	return strconv.Itoa(seconds) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	switch {
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		return "", crerr.Newf("%q uses unsupported scheme %q", candidate, parsed.Scheme)
	case parsed.Host == "":
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

// buildQStashCurlPreview renders a copy-pasteable request for logs with the
// bearer and forwarded job token masked.
func buildQStashCurlPreview(publishURL, path, delay string, retries int, deduplicationID, body string, withForwardToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	headers := []string{
		"Authorization: Bearer ***",
		"Content-Type: application/json",
		"Upstash-Method: POST",
	}
	if retries > 0 {
		headers = append(headers, "Upstash-Retries: "+strconv.Itoa(retries))
	}
	if delay != "" && delay != "0s" {
		headers = append(headers, "Upstash-Delay: "+delay)
	}
	if deduplicationID != "" {
		headers = append(headers, "Upstash-Deduplication-Id: "+deduplicationID)
	}
	if withForwardToken {
		headers = append(headers, "Upstash-Forward-X-Internal-Job-Token: ***")
	}

	_, _ = buf.WriteString("curl -X POST " + shellQuote(publishURL))
	for _, header := range headers {
		_, _ = buf.WriteString(" -H " + shellQuote(header))
	}
	_, _ = buf.WriteString(" -d " + shellQuote(body))
	_, _ = buf.WriteString(" # " + shellQuote("path="+path))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isQStashCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errQStashTransient)
}

func isQStashRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
