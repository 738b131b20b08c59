package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/iksnae/thread-digest/internal"
	"github.com/iksnae/thread-digest/internal/export"
)

// Server exposes a Controller over HTTP. Handlers run on many goroutines, so
// every Apply happens under mu; the network round trip does not.
type Server struct {
	mu         sync.Mutex
	controller *internal.Controller
	router     *gin.Engine
}

// NewServer builds the router. An empty allowedOrigins list disables CORS.
func NewServer(controller *internal.Controller, allowedOrigins []string) *Server {
	s := &Server{controller: controller}

	r := gin.New()
	r.Use(gin.Recovery())

	if len(allowedOrigins) > 0 {
		internal.LogDebug("AllowOrigins: %v", allowedOrigins)
		r.Use(cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	r.GET("/", s.GetPage)
	r.GET("/health", s.GetHealth)
	r.GET("/api/state", s.GetState)
	r.POST("/api/summarize", s.PostSummarize)
	r.POST("/api/options", s.PostOptions)
	r.POST("/api/theme/toggle", s.PostToggleTheme)
	r.GET("/api/history", s.GetHistory)
	r.POST("/api/history/pick", s.PostPickHistory)
	r.GET("/api/last", s.GetLast)

	s.router = r
	return s
}

// Handler returns the router as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until the server fails
func (s *Server) Run(addr string) error {
	internal.LogInfo("Serving on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) apply(ev internal.Event) (internal.State, *internal.DispatchEffect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Apply(ev)
}

func (s *Server) state() internal.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.State()
}

func (s *Server) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, toStateResponse(s.state()))
}

func (s *Server) PostSummarize(c *gin.Context) {
	var opts internal.RequestOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s.mu.Lock()
	normalized := opts.Normalized()
	if s.controller.State().InFlight[normalized.Source] {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("A %s summary is already being generated.", normalized.Source.Label())})
		return
	}
	state, dispatch := s.controller.Apply(internal.SubmitEvent{Options: opts})
	s.mu.Unlock()

	if dispatch == nil {
		c.JSON(http.StatusUnprocessableEntity, toStateResponse(state))
		return
	}

	// A client disconnect must not abort the flow; its completion is always applied.
	done := s.controller.Fetch(context.WithoutCancel(c.Request.Context()), dispatch.Options)
	state, _ = s.apply(done)

	c.JSON(statusFor(done.Err), toStateResponse(state))
}

func statusFor(err error) int {
	var emptyErr *internal.EmptyResultError
	var transportErr *internal.TransportError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &emptyErr):
		return http.StatusNotFound
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) PostOptions(c *gin.Context) {
	var opts internal.RequestOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	state, _ := s.apply(internal.SetOptionsEvent{Options: opts})
	c.JSON(http.StatusOK, toStateResponse(state))
}

func (s *Server) PostToggleTheme(c *gin.Context) {
	state, _ := s.apply(internal.ToggleThemeEvent{})
	c.JSON(http.StatusOK, toStateResponse(state))
}

func (s *Server) GetHistory(c *gin.Context) {
	h := s.state().History
	res := HistoryResponse{Topics: h.Topics, Dark: h.Dark}
	if res.Topics == nil {
		res.Topics = []string{}
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) PostPickHistory(c *gin.Context) {
	var req PickRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Topic) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	state, _ := s.apply(internal.PickHistoryEvent{Topic: req.Topic})
	c.JSON(http.StatusOK, toStateResponse(state))
}

func (s *Server) GetLast(c *gin.Context) {
	source := internal.Source("")
	if v := c.Query("source"); v != "" {
		parsed, err := internal.ParseSource(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		source = parsed
	}

	s.mu.Lock()
	record, err := s.controller.LastRecord(source)
	s.mu.Unlock()
	if err != nil {
		internal.LogError("error loading cached result: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cache error"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No result available"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) GetPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(renderPage(s.state())))
}

func renderPage(state internal.State) string {
	var b strings.Builder
	esc := internal.EscapeHTML

	theme := "light"
	if state.History.Dark {
		theme = "dark"
	}

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Thread Digest</title>\n")
	b.WriteString(export.PageStyle)
	fmt.Fprintf(&b, "</head>\n<body class=\"%s\">\n<h1>Thread Digest</h1>\n", theme)

	opts := state.Options
	fmt.Fprintf(&b, "<p class=\"options\">%s", esc(opts.Source.Label()))
	if opts.Source.RequiresQuery() && opts.Query != "" {
		fmt.Fprintf(&b, ": %s", esc(opts.Query))
	}
	fmt.Fprintf(&b, " | %s | %s</p>\n", esc(opts.Format.Label()), esc(opts.Length.Label()))

	if len(state.History.Topics) > 0 {
		b.WriteString("<h2>Recent</h2>\n<ul class=\"history\">\n")
		for _, topic := range state.History.Topics {
			fmt.Fprintf(&b, "<li>%s</li>\n", esc(topic))
		}
		b.WriteString("</ul>\n")
	}

	switch {
	case state.Loading():
		b.WriteString("<p class=\"status\">Generating summary...</p>\n")
	case state.Status == internal.StatusError:
		fmt.Fprintf(&b, "<p class=\"error\">%s</p>\n", esc(state.ErrorMessage))
	}

	if state.Result != nil {
		export.WriteResultHTML(&b, state.Result)
		if keywords := state.Frequencies.Top(20); len(keywords) > 0 {
			b.WriteString("<h2>Keywords</h2>\n<ul class=\"keywords\">\n")
			for _, kw := range keywords {
				fmt.Fprintf(&b, "<li>%s <span>%d</span></li>\n", esc(kw.Word), kw.Count)
			}
			b.WriteString("</ul>\n")
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
