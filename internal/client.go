package internal

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

	"github.com/google/uuid"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 8 << 20

// Dispatcher sends one summarization request and reports what came back.
// Transport failures are carried in RawResponse.Err rather than returned.
type Dispatcher interface {
	Dispatch(ctx context.Context, opts RequestOptions) RawResponse
}

// TrendingSource supplies topic suggestions
type TrendingSource interface {
	TrendingTopics(ctx context.Context) ([]string, error)
}

// EndpointPaths are the service paths for each flow
type EndpointPaths struct {
	Topic      string `yaml:"topic"`
	Aggregator string `yaml:"aggregator"`
	URL        string `yaml:"url"`
	Text       string `yaml:"text"`
	Trending   string `yaml:"trending"`
}

// DefaultEndpointPaths returns the paths the summarization service serves
func DefaultEndpointPaths() EndpointPaths {
	return EndpointPaths{
		Topic:      "/summarize",
		Aggregator: "/summarize-hn",
		URL:        "/summarize-url",
		Text:       "/summarize-text",
		Trending:   "/trending-topics",
	}
}

// HTTPDispatcher talks to the summarization service over HTTP
type HTTPDispatcher struct {
	baseURL   string
	paths     EndpointPaths
	client    *http.Client
	userAgent string
}

// DispatcherOption configures an HTTPDispatcher
type DispatcherOption func(*HTTPDispatcher)

// WithPaths overrides the endpoint paths
func WithPaths(paths EndpointPaths) DispatcherOption {
	return func(d *HTTPDispatcher) {
		d.paths = paths
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *HTTPDispatcher) {
		d.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying client
func WithHTTPClient(client *http.Client) DispatcherOption {
	return func(d *HTTPDispatcher) {
		d.client = client
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) DispatcherOption {
	return func(d *HTTPDispatcher) {
		d.userAgent = ua
	}
}

// NewHTTPDispatcher creates a dispatcher for the service at baseURL
func NewHTTPDispatcher(baseURL string, opts ...DispatcherOption) *HTTPDispatcher {
	d := &HTTPDispatcher{
		baseURL:   strings.TrimRight(baseURL, "/"),
		paths:     DefaultEndpointPaths(),
		client:    &http.Client{Timeout: 60 * time.Second},
		userAgent: "thread-digest/dev",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// BaseURL returns the service root
func (d *HTTPDispatcher) BaseURL() string {
	return d.baseURL
}

// TopicQuery builds the query string for the topic flow. It always carries
// exactly topic, summary_format, sentiment_analysis, summary_length and
// prompt_template.
func TopicQuery(opts RequestOptions) url.Values {
	params := url.Values{}
	params.Set("topic", opts.Query)
	params.Set("summary_format", opts.Format.WireValue())
	params.Set("sentiment_analysis", strconv.FormatBool(opts.Sentiment))
	params.Set("summary_length", string(opts.Length))
	params.Set("prompt_template", string(opts.Template.orDefault()))
	return params
}

// Dispatch sends the request for opts. Options that fail validation are
// returned in RawResponse.Err without touching the network.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, opts RequestOptions) RawResponse {
	opts, err := ValidateOptions(opts)
	if err != nil {
		return RawResponse{Err: err}
	}

	req, err := d.buildRequest(ctx, opts)
	if err != nil {
		return RawResponse{Err: err}
	}

	requestID := req.Header.Get("X-Request-ID")
	LogDebug("Dispatching %s %s (request %s)", req.Method, req.URL.Path, requestID)

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		LogDebug("Request %s failed: %v", requestID, err)
		return RawResponse{Err: err, RequestID: requestID}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return RawResponse{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err), RequestID: requestID}
	}

	LogDebug("Request %s returned %d in %s", requestID, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return RawResponse{StatusCode: resp.StatusCode, Body: body, RequestID: requestID}
}

func (d *HTTPDispatcher) buildRequest(ctx context.Context, opts RequestOptions) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)

	switch opts.Source {
	case SourceTopic:
		endpoint := d.baseURL + d.paths.Topic + "?" + TopicQuery(opts).Encode()
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	case SourceAggregator:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+d.paths.Aggregator, nil)
	case SourceURL:
		req, err = d.newJSONRequest(ctx, d.paths.URL, map[string]string{"url": opts.Query})
	case SourceText:
		req, err = d.newJSONRequest(ctx, d.paths.Text, map[string]string{"text": opts.Query})
	default:
		return nil, &ValidationError{Source: opts.Source, Field: "source", Value: string(opts.Source)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	d.setHeaders(req)
	return req, nil
}

func (d *HTTPDispatcher) newJSONRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (d *HTTPDispatcher) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// TrendingTopics fetches topic suggestions
func (d *HTTPDispatcher) TrendingTopics(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+d.paths.Trending, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	d.setHeaders(req)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending topics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trending topics returned status %d", resp.StatusCode)
	}

	var topics []string
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&topics); err != nil {
		return nil, fmt.Errorf("failed to decode trending topics: %w", err)
	}
	return topics, nil
}

// Ping checks that the service answers at all. Any HTTP status counts.
func (d *HTTPDispatcher) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+d.paths.Trending, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	d.setHeaders(req)

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
