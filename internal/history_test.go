package internal

import (
	"errors"
	"reflect"
	"testing"
)

// failingKV fails every operation
type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, errors.New("read failed") }
func (failingKV) Set(string, string) error         { return errors.New("write failed") }
func (failingKV) Delete(string) error              { return errors.New("delete failed") }
func (failingKV) Close() error                     { return nil }

func TestPushTopic(t *testing.T) {
	tests := []struct {
		name   string
		topics []string
		topic  string
		want   []string
	}{
		{"empty", nil, "go", []string{"go"}},
		{"new topic goes first", []string{"rust"}, "go", []string{"go", "rust"}},
		{"existing topic moves to front", []string{"rust", "go", "zig"}, "go", []string{"go", "rust", "zig"}},
		{"already first", []string{"go", "rust"}, "go", []string{"go", "rust"}},
		{"case sensitive", []string{"Go"}, "go", []string{"go", "Go"}},
		{"truncates to five", []string{"a", "b", "c", "d", "e"}, "f", []string{"f", "a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := append([]string(nil), tt.topics...)
			got := PushTopic(tt.topics, tt.topic)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PushTopic(%v, %q) = %v, want %v", tt.topics, tt.topic, got, tt.want)
			}
			if !reflect.DeepEqual(tt.topics, before) && tt.topics != nil {
				t.Errorf("PushTopic() modified its input: %v", tt.topics)
			}
		})
	}
}

func TestHistoryStore_RecordTopic(t *testing.T) {
	store := NewHistoryStore(NewMemoryKV())

	store.RecordTopic("golang")
	store.RecordTopic("golang")

	history := store.Load()
	if !reflect.DeepEqual(history.Topics, []string{"golang"}) {
		t.Errorf("Topics after recording twice = %v, want [golang]", history.Topics)
	}

	for _, topic := range []string{"a", "b", "c", "d", "e", "f"} {
		store.RecordTopic(topic)
	}
	history = store.Load()
	want := []string{"f", "e", "d", "c", "b"}
	if !reflect.DeepEqual(history.Topics, want) {
		t.Errorf("Topics = %v, want %v", history.Topics, want)
	}
}

func TestHistoryStore_Load(t *testing.T) {
	tests := []struct {
		name       string
		values     map[string]string
		wantTopics []string
		wantDark   bool
	}{
		{
			name:       "nothing saved",
			values:     map[string]string{},
			wantTopics: []string{},
		},
		{
			name:       "saved values",
			values:     map[string]string{HistoryKey: `["go","rust"]`, ThemeKey: "true"},
			wantTopics: []string{"go", "rust"},
			wantDark:   true,
		},
		{
			name:       "corrupt history",
			values:     map[string]string{HistoryKey: `{not json`, ThemeKey: "false"},
			wantTopics: []string{},
		},
		{
			name:       "corrupt theme",
			values:     map[string]string{ThemeKey: "maybe"},
			wantTopics: []string{},
		},
		{
			name:       "oversized and duplicated history",
			values:     map[string]string{HistoryKey: `["a","b","a","c","d","e","f"]`},
			wantTopics: []string{"a", "b", "c", "d", "e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			for k, v := range tt.values {
				_ = kv.Set(k, v)
			}

			history := NewHistoryStore(kv).Load()
			if !reflect.DeepEqual(history.Topics, tt.wantTopics) {
				t.Errorf("Load().Topics = %v, want %v", history.Topics, tt.wantTopics)
			}
			if history.Dark != tt.wantDark {
				t.Errorf("Load().Dark = %v, want %v", history.Dark, tt.wantDark)
			}
		})
	}
}

func TestHistoryStore_SetTheme(t *testing.T) {
	kv := NewMemoryKV()
	store := NewHistoryStore(kv)

	store.SetTheme(true)
	store.SetTheme(true)
	if v, _, _ := kv.Get(ThemeKey); v != "true" {
		t.Errorf("%s = %q, want %q", ThemeKey, v, "true")
	}
	if !store.Load().Dark {
		t.Error("Load().Dark = false after SetTheme(true)")
	}

	store.SetTheme(false)
	if store.Load().Dark {
		t.Error("Load().Dark = true after SetTheme(false)")
	}
}

func TestHistoryStore_Clear(t *testing.T) {
	store := NewHistoryStore(NewMemoryKV())
	store.RecordTopic("go")
	store.SetTheme(true)

	store.Clear()

	history := store.Load()
	if len(history.Topics) != 0 {
		t.Errorf("Topics after Clear() = %v, want empty", history.Topics)
	}
	if !history.Dark {
		t.Error("Clear() should keep the theme preference")
	}
}

func TestHistoryStore_BestEffort(t *testing.T) {
	store := NewHistoryStore(failingKV{})

	history := store.Load()
	if len(history.Topics) != 0 || history.Dark {
		t.Errorf("Load() with failing store = %+v, want defaults", history)
	}

	if got := store.RecordTopic("go"); !reflect.DeepEqual(got, []string{"go"}) {
		t.Errorf("RecordTopic() = %v, want [go]", got)
	}
	store.SetTheme(true)
	store.Clear()
}

func TestHistoryStore_Nil(t *testing.T) {
	var store *HistoryStore

	if history := store.Load(); len(history.Topics) != 0 {
		t.Errorf("nil store Load() = %+v", history)
	}
	store.RecordTopic("go")
	store.SetTheme(true)
	store.Clear()
	if err := store.Close(); err != nil {
		t.Errorf("nil store Close() error = %v", err)
	}

	NewHistoryStore(nil).RecordTopic("go")
}
