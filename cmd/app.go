package cmd

import (
	"fmt"

	"github.com/iksnae/thread-digest/internal"
)

// app bundles everything a command needs to run a flow
type app struct {
	config     *internal.Config
	store      internal.KVStore
	history    *internal.HistoryStore
	dispatcher *internal.HTTPDispatcher
	cache      *internal.ResultCache
	controller *internal.Controller
}

// newApp loads config and wires the history store, dispatcher, result cache
// and controller. Callers must Close it.
func newApp() (*app, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
	}

	opts, err := cfg.DefaultOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid defaults: %w", err)
	}

	store := internal.OpenKVOrMemory(cfg.Store)
	history := internal.NewHistoryStore(store)

	dispatcher := internal.NewHTTPDispatcher(cfg.Server.BaseURL,
		internal.WithPaths(cfg.Server.Paths),
		internal.WithTimeout(cfg.Server.Timeout),
		internal.WithUserAgent("thread-digest/"+version),
	)

	cache := internal.NewResultCache(cfg.Cache.Dir)

	controller := internal.NewController(dispatcher, history,
		internal.WithTrending(dispatcher),
		internal.WithResultCache(cache),
		internal.WithInitialOptions(opts),
	)

	return &app{
		config:     cfg,
		store:      store,
		history:    history,
		dispatcher: dispatcher,
		cache:      cache,
		controller: controller,
	}, nil
}

// loadHistory feeds the saved history into the controller without fetching
// trending topics.
func (a *app) loadHistory() internal.State {
	state, _ := a.controller.Apply(internal.HistoryLoadedEvent{History: a.history.Load()})
	return state
}

func (a *app) Close() {
	if err := a.history.Close(); err != nil {
		internal.LogWarn("Failed to close store: %v", err)
	}
}
