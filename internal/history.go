package internal

import (
	"encoding/json"
	"strconv"
)

// Keys shared with the browser version of the app
const (
	HistoryKey = "topicHistory"
	ThemeKey   = "darkMode"
)

// MaxHistory is the number of recent topics kept
const MaxHistory = 5

// HistoryStore persists recent topics and the theme preference. Failures are
// logged and otherwise ignored; a nil store or nil KVStore makes every method
// a no-op.
type HistoryStore struct {
	kv KVStore
}

// NewHistoryStore creates a history store over kv
func NewHistoryStore(kv KVStore) *HistoryStore {
	return &HistoryStore{kv: kv}
}

func (h *HistoryStore) enabled() bool {
	return h != nil && h.kv != nil
}

// Load reads the saved history. Missing or corrupt values give defaults.
func (h *HistoryStore) Load() SessionHistory {
	history := SessionHistory{Topics: []string{}}
	if !h.enabled() {
		return history
	}

	history.Topics = h.loadTopics()

	raw, ok, err := h.kv.Get(ThemeKey)
	if err != nil {
		LogDebug("Failed to read %s: %v", ThemeKey, err)
	} else if ok {
		dark, err := strconv.ParseBool(raw)
		if err != nil {
			LogDebug("Ignoring malformed %s value %q", ThemeKey, raw)
		}
		history.Dark = dark
	}

	return history
}

func (h *HistoryStore) loadTopics() []string {
	raw, ok, err := h.kv.Get(HistoryKey)
	if err != nil {
		LogDebug("Failed to read %s: %v", HistoryKey, err)
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var topics []string
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		LogDebug("Ignoring malformed %s value: %v", HistoryKey, err)
		return []string{}
	}

	// Re-apply the list invariants in case another writer broke them
	clean := []string{}
	for i := len(topics) - 1; i >= 0; i-- {
		if topics[i] != "" {
			clean = PushTopic(clean, topics[i])
		}
	}
	return clean
}

// RecordTopic puts topic at the front of the saved history and returns the
// updated list.
func (h *HistoryStore) RecordTopic(topic string) []string {
	if !h.enabled() {
		return PushTopic(nil, topic)
	}

	topics := PushTopic(h.loadTopics(), topic)
	data, err := json.Marshal(topics)
	if err != nil {
		LogWarn("Failed to encode topic history: %v", err)
		return topics
	}
	if err := h.kv.Set(HistoryKey, string(data)); err != nil {
		LogWarn("Failed to save topic history: %v", err)
	}
	return topics
}

// SetTheme saves the theme preference
func (h *HistoryStore) SetTheme(dark bool) {
	if !h.enabled() {
		return
	}
	if err := h.kv.Set(ThemeKey, strconv.FormatBool(dark)); err != nil {
		LogWarn("Failed to save theme preference: %v", err)
	}
}

// Clear removes the saved topics. The theme preference is kept.
func (h *HistoryStore) Clear() {
	if !h.enabled() {
		return
	}
	if err := h.kv.Delete(HistoryKey); err != nil {
		LogWarn("Failed to clear topic history: %v", err)
	}
}

// Close releases the underlying store
func (h *HistoryStore) Close() error {
	if !h.enabled() {
		return nil
	}
	return h.kv.Close()
}

// PushTopic returns a new list with topic first, any earlier copy of it
// removed, and at most MaxHistory entries. The input is not modified.
func PushTopic(topics []string, topic string) []string {
	out := make([]string, 0, MaxHistory)
	out = append(out, topic)
	for _, t := range topics {
		if len(out) == MaxHistory {
			break
		}
		if t != topic {
			out = append(out, t)
		}
	}
	return out
}
