package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// SummaryBody is the default successful response of the fake server
const SummaryBody = `{
	"summary": "Go is great. Go is fast, and simple.",
	"ui_summary": "Go in one line",
	"posts": [
		{"title": "Why Go", "text": "Go compiles quickly.", "url": "https://example.com/why-go"},
		{"title": "Go tips", "text": "Use <b>gofmt</b>.", "url": "https://example.com/tips"}
	],
	"timestamp": 1709294400.5
}`

// TrendingBody is the default trending-topics response
const TrendingBody = `["golang","rust","kubernetes"]`

// RecordedRequest is a request the fake server received
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type fakeResponse struct {
	status int
	body   string
}

// FakeServer imitates the summarization service
type FakeServer struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []RecordedRequest
	responses map[string]fakeResponse
}

// NewFakeServer starts a fake summarization service that answers every
// summarize endpoint with SummaryBody. It is closed when the test ends.
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs := &FakeServer{
		responses: map[string]fakeResponse{
			"/summarize":       {status: http.StatusOK, body: SummaryBody},
			"/summarize-hn":    {status: http.StatusOK, body: SummaryBody},
			"/summarize-url":   {status: http.StatusOK, body: SummaryBody},
			"/summarize-text":  {status: http.StatusOK, body: SummaryBody},
			"/trending-topics": {status: http.StatusOK, body: TrendingBody},
		},
	}

	router := gin.New()
	router.Any("/*path", fs.handle)

	fs.Server = httptest.NewServer(router)
	t.Cleanup(fs.Close)
	return fs
}

func (fs *FakeServer) handle(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)

	fs.mu.Lock()
	fs.requests = append(fs.requests, RecordedRequest{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	resp, ok := fs.responses[c.Request.URL.Path]
	fs.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
		return
	}
	c.Data(resp.status, "application/json", []byte(resp.body))
}

// SetResponse changes what path answers with
func (fs *FakeServer) SetResponse(path string, status int, body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.responses[path] = fakeResponse{status: status, body: body}
}

// Requests returns every request received so far
func (fs *FakeServer) Requests() []RecordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]RecordedRequest(nil), fs.requests...)
}

// RequestCount returns how many requests hit path
func (fs *FakeServer) RequestCount(path string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	n := 0
	for _, r := range fs.requests {
		if r.Path == path {
			n++
		}
	}
	return n
}

// LastRequest returns the most recent request, failing the test if none
func (fs *FakeServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.requests) == 0 {
		t.Fatal("FakeServer received no requests")
	}
	return fs.requests[len(fs.requests)-1]
}
