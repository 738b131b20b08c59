package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Controller owns a State and runs the effects Transition asks for. Only Fetch
// is safe to call from another goroutine.
type Controller struct {
	dispatcher Dispatcher
	history    *HistoryStore
	trending   TrendingSource
	cache      *ResultCache
	saved      *Record
	state      State
	now        func() time.Time
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithTrending sets the source of topic suggestions. Without one the session
// has no suggestions.
func WithTrending(src TrendingSource) ControllerOption {
	return func(c *Controller) {
		c.trending = src
	}
}

// WithResultCache saves every successful result to cache
func WithResultCache(cache *ResultCache) ControllerOption {
	return func(c *Controller) {
		c.cache = cache
	}
}

// WithInitialOptions sets the options a new session starts with
func WithInitialOptions(opts RequestOptions) ControllerOption {
	return func(c *Controller) {
		c.state.Options = opts
	}
}

// NewController creates a controller in the idle state
func NewController(dispatcher Dispatcher, history *HistoryStore, opts ...ControllerOption) *Controller {
	c := &Controller{
		dispatcher: dispatcher,
		history:    history,
		state:      NewState(DefaultOptions(), SessionHistory{}),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// History returns the history store (possibly nil)
func (c *Controller) History() *HistoryStore {
	return c.history
}

// Trending returns the configured suggestion source (possibly nil)
func (c *Controller) Trending() TrendingSource {
	return c.trending
}

// Start loads saved history and, if available, trending topics
func (c *Controller) Start(ctx context.Context) State {
	c.Apply(HistoryLoadedEvent{History: c.history.Load()})

	if c.trending != nil {
		topics, err := c.trending.TrendingTopics(ctx)
		if err != nil {
			LogDebug("Trending topics unavailable: %v", err)
		} else {
			c.Apply(TrendingLoadedEvent{Topics: topics})
		}
	}
	return c.state
}

// Apply feeds ev through Transition and runs persistence effects. A
// DispatchEffect is returned for the caller to run with Fetch.
func (c *Controller) Apply(ev Event) (State, *DispatchEffect) {
	next, effect := Transition(c.state, ev)
	c.state = next

	if done, ok := ev.(CompletedEvent); ok {
		c.saved = nil
		if done.Err == nil && done.Result != nil {
			c.saveRecord(done)
		}
	}

	switch effect := effect.(type) {
	case DispatchEffect:
		return c.state, &effect
	case RecordTopicEffect:
		c.history.RecordTopic(effect.Topic)
	case PersistThemeEffect:
		c.history.SetTheme(effect.Dark)
	}
	return c.state, nil
}

// Fetch runs a dispatch and normalizes the response. It does not touch the
// controller's state, so it may run on another goroutine.
func (c *Controller) Fetch(ctx context.Context, opts RequestOptions) CompletedEvent {
	raw := c.dispatcher.Dispatch(ctx, opts)
	result, err := Normalize(opts.Source, opts.Query, raw)
	if err != nil {
		LogDebug("Request %s for %s failed: %v", raw.RequestID, opts, err)
	}
	return CompletedEvent{Options: opts, Result: result, Err: err}
}

// Submit runs a whole flow synchronously. The returned error is the flow's
// failure, if any; the state carries the user-facing message.
func (c *Controller) Submit(ctx context.Context, opts RequestOptions) (State, error) {
	state, dispatch := c.Apply(SubmitEvent{Options: opts})
	if dispatch == nil {
		if state.Status == StatusError {
			_, err := ValidateOptions(opts)
			return state, err
		}
		return state, nil
	}

	done := c.Fetch(ctx, dispatch.Options)
	state, _ = c.Apply(done)
	return state, done.Err
}

// LastRecord returns the most recent cached record for source ("" for any)
func (c *Controller) LastRecord(source Source) (*Record, error) {
	if c.cache == nil {
		return nil, nil
	}
	return c.cache.Latest(source)
}

func (c *Controller) saveRecord(done CompletedEvent) {
	if c.cache == nil {
		return
	}
	record := &Record{
		ID:        uuid.NewString(),
		Options:   done.Options,
		Result:    *done.Result,
		Keywords:  Analyze(done.Result.SummaryText).Top(20),
		CreatedAt: c.now(),
	}
	if err := c.cache.SaveRecord(record); err != nil {
		LogWarn("Failed to cache result: %v", err)
		return
	}
	c.saved = record
}

// SavedRecord returns the record cached for the most recent completion. It is
// nil when that completion failed or could not be cached.
func (c *Controller) SavedRecord() *Record {
	return c.saved
}
