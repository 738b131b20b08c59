package internal

import (
	"errors"
	"reflect"
	"testing"
)

func topicOpts(q string) RequestOptions {
	opts := DefaultOptions()
	opts.Query = q
	return opts
}

func TestTransition_SubmitValid(t *testing.T) {
	s := NewState(DefaultOptions(), SessionHistory{})
	s.Result = CreateTestResult("old")
	s.ErrorMessage = "old error"
	s.Frequencies = FrequencyIndex{"old": 1}

	next, effect := Transition(s, SubmitEvent{Options: topicOpts("  golang ")})

	if next.Status != StatusLoading {
		t.Errorf("Status = %v, want loading", next.Status)
	}
	if next.Result != nil || next.ErrorMessage != "" || len(next.Frequencies) != 0 {
		t.Errorf("Submit did not clear display state: %+v", next)
	}
	if !next.InFlight[SourceTopic] {
		t.Error("InFlight[topic] = false, want true")
	}
	dispatch, ok := effect.(DispatchEffect)
	if !ok {
		t.Fatalf("effect = %T, want DispatchEffect", effect)
	}
	if dispatch.Options.Query != "golang" {
		t.Errorf("dispatched query = %q, want trimmed %q", dispatch.Options.Query, "golang")
	}

	if len(s.InFlight) != 0 {
		t.Error("Transition() mutated the input state's InFlight map")
	}
}

func TestTransition_SubmitInvalid(t *testing.T) {
	tests := []struct {
		source  Source
		wantMsg string
	}{
		{SourceTopic, "Please enter a topic."},
		{SourceURL, "Please enter a URL."},
		{SourceText, "Please enter some text."},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			s := NewState(DefaultOptions(), SessionHistory{})
			s.Result = CreateTestResult("previous")

			opts := DefaultOptions()
			opts.Source = tt.source
			opts.Query = "   "
			next, effect := Transition(s, SubmitEvent{Options: opts})

			if effect != nil {
				t.Errorf("effect = %#v, want nil", effect)
			}
			if next.Status != StatusError || next.ErrorMessage != tt.wantMsg {
				t.Errorf("state = %v %q, want error %q", next.Status, next.ErrorMessage, tt.wantMsg)
			}
			if next.Result != nil {
				t.Error("Result should be cleared on validation failure")
			}
			if next.Loading() {
				t.Error("validation failure marked a flow in flight")
			}
		})
	}
}

func TestTransition_SubmitWhileInFlightIgnored(t *testing.T) {
	s := NewState(DefaultOptions(), SessionHistory{})
	s, _ = Transition(s, SubmitEvent{Options: topicOpts("go")})

	next, effect := Transition(s, SubmitEvent{Options: topicOpts("rust")})
	if effect != nil {
		t.Errorf("second submit effect = %#v, want nil", effect)
	}
	if next.Status != StatusLoading || !next.InFlight[SourceTopic] {
		t.Errorf("state after ignored submit = %+v", next)
	}

	hn := DefaultOptions()
	hn.Source = SourceAggregator
	_, effect = Transition(next, SubmitEvent{Options: hn})
	if _, ok := effect.(DispatchEffect); !ok {
		t.Errorf("submit on another flow effect = %T, want DispatchEffect", effect)
	}
}

func TestTransition_CompletedSuccess(t *testing.T) {
	s := NewState(DefaultOptions(), SessionHistory{Topics: []string{"rust", "golang"}})
	s, _ = Transition(s, SubmitEvent{Options: topicOpts("golang")})

	result := CreateTestResult("a a b")
	next, effect := Transition(s, CompletedEvent{Options: topicOpts("golang"), Result: result})

	if next.Status != StatusSuccess {
		t.Errorf("Status = %v, want success", next.Status)
	}
	if next.Result != result {
		t.Error("Result not set")
	}
	if !reflect.DeepEqual(next.Frequencies, FrequencyIndex{"a": 2, "b": 1}) {
		t.Errorf("Frequencies = %v", next.Frequencies)
	}
	if next.Loading() {
		t.Error("flow still in flight after completion")
	}
	record, ok := effect.(RecordTopicEffect)
	if !ok || record.Topic != "golang" {
		t.Errorf("effect = %#v, want RecordTopicEffect{golang}", effect)
	}
	if !reflect.DeepEqual(next.History.Topics, []string{"golang", "rust"}) {
		t.Errorf("History.Topics = %v, want [golang rust]", next.History.Topics)
	}
}

func TestTransition_CompletedSuccessNonTopic(t *testing.T) {
	for _, source := range []Source{SourceAggregator, SourceURL, SourceText} {
		opts := DefaultOptions()
		opts.Source = source
		opts.Query = "q"
		s := NewState(DefaultOptions(), SessionHistory{})
		s, _ = Transition(s, SubmitEvent{Options: opts})

		next, effect := Transition(s, CompletedEvent{Options: opts.Normalized(), Result: CreateTestResult("x")})
		if effect != nil {
			t.Errorf("%s completion effect = %#v, want nil", source, effect)
		}
		if len(next.History.Topics) != 0 {
			t.Errorf("%s completion changed history: %v", source, next.History.Topics)
		}
	}
}

func TestTransition_CompletedFailure(t *testing.T) {
	s := NewState(DefaultOptions(), SessionHistory{})
	s, _ = Transition(s, SubmitEvent{Options: topicOpts("golang")})

	next, effect := Transition(s, CompletedEvent{
		Options: topicOpts("golang"),
		Err:     &EmptyResultError{Source: SourceTopic, Query: "golang"},
	})

	if effect != nil {
		t.Errorf("effect = %#v, want nil", effect)
	}
	if next.Status != StatusError {
		t.Errorf("Status = %v, want error", next.Status)
	}
	if next.ErrorMessage != `No summary found for topic "golang".` {
		t.Errorf("ErrorMessage = %q", next.ErrorMessage)
	}
	if next.Result != nil || len(next.Frequencies) != 0 {
		t.Error("failure left a result behind")
	}

	next, _ = Transition(s, CompletedEvent{Options: topicOpts("golang"), Err: &TransportError{Source: SourceTopic, Err: errors.New("eof")}})
	if next.ErrorMessage != "Failed to generate topic summary." {
		t.Errorf("ErrorMessage = %q", next.ErrorMessage)
	}
}

func TestTransition_ToggleTheme(t *testing.T) {
	s := NewState(DefaultOptions(), SessionHistory{})
	s, _ = Transition(s, SubmitEvent{Options: topicOpts("go")})

	next, effect := Transition(s, ToggleThemeEvent{})
	if !next.History.Dark {
		t.Error("Dark = false after toggle")
	}
	if persist, ok := effect.(PersistThemeEffect); !ok || !persist.Dark {
		t.Errorf("effect = %#v, want PersistThemeEffect{true}", effect)
	}
	if next.Status != StatusLoading || !next.InFlight[SourceTopic] {
		t.Error("toggle changed request state")
	}

	next, effect = Transition(next, ToggleThemeEvent{})
	if next.History.Dark {
		t.Error("Dark = true after second toggle")
	}
	if persist := effect.(PersistThemeEffect); persist.Dark {
		t.Error("second toggle should persist light")
	}
}

func TestTransition_PickHistory(t *testing.T) {
	s := NewState(RequestOptions{Source: SourceURL, Query: "https://x", Format: FormatTLDR}, SessionHistory{Topics: []string{"rust"}})

	next, effect := Transition(s, PickHistoryEvent{Topic: "rust"})
	if effect != nil {
		t.Errorf("effect = %#v, want nil (no dispatch)", effect)
	}
	if next.Options.Source != SourceTopic || next.Options.Query != "rust" {
		t.Errorf("Options = %+v", next.Options)
	}
	if next.Options.Format != FormatTLDR {
		t.Error("PickHistory changed unrelated options")
	}
}

func TestTransition_EditsWhileLoading(t *testing.T) {
	s := NewState(DefaultOptions(), SessionHistory{})
	s, dispatch := Transition(s, SubmitEvent{Options: topicOpts("golang")})
	sent := dispatch.(DispatchEffect).Options

	s, _ = Transition(s, SetOptionsEvent{Options: topicOpts("rust")})
	s, _ = Transition(s, PickHistoryEvent{Topic: "zig"})

	if sent.Query != "golang" {
		t.Errorf("in-flight options changed to %q", sent.Query)
	}
	if !s.InFlight[SourceTopic] || s.Status != StatusLoading {
		t.Error("edits cancelled the in-flight request")
	}

	next, effect := Transition(s, CompletedEvent{Options: sent, Result: CreateTestResult("ok")})
	if record := effect.(RecordTopicEffect); record.Topic != "golang" {
		t.Errorf("recorded %q, want the submitted topic", record.Topic)
	}
	if next.Options.Query != "zig" {
		t.Errorf("completion overwrote edited options: %q", next.Options.Query)
	}
}

func TestTransition_LastCompletionWins(t *testing.T) {
	s := NewState(DefaultOptions(), SessionHistory{})
	hn := RequestOptions{Source: SourceAggregator}.Normalized()

	s, _ = Transition(s, SubmitEvent{Options: topicOpts("golang")})
	s, _ = Transition(s, SubmitEvent{Options: hn})
	if !s.InFlight[SourceTopic] || !s.InFlight[SourceAggregator] {
		t.Fatalf("InFlight = %v, want both flows", s.InFlight)
	}

	hnResult := CreateTestResult("hn summary")
	topicResult := CreateTestResult("topic summary")

	s, _ = Transition(s, CompletedEvent{Options: hn, Result: hnResult})
	if s.Status != StatusSuccess || s.Result != hnResult {
		t.Errorf("after first completion Result = %+v", s.Result)
	}
	if !s.InFlight[SourceTopic] || s.InFlight[SourceAggregator] {
		t.Errorf("InFlight = %v, want only topic", s.InFlight)
	}

	s, _ = Transition(s, CompletedEvent{Options: topicOpts("golang"), Result: topicResult})
	if s.Result != topicResult {
		t.Errorf("Result = %q, want the last completion", s.Result.SummaryText)
	}
	if s.Loading() {
		t.Error("Loading() = true after both completions")
	}
}

func TestTransition_LoadedEvents(t *testing.T) {
	s := NewState(DefaultOptions(), SessionHistory{})

	s, _ = Transition(s, HistoryLoadedEvent{History: SessionHistory{Dark: true}})
	if !s.History.Dark || s.History.Topics == nil {
		t.Errorf("History = %+v", s.History)
	}

	topics := []string{"go", "rust"}
	s, _ = Transition(s, TrendingLoadedEvent{Topics: topics})
	topics[0] = "changed"
	if s.Trending[0] != "go" {
		t.Error("Trending shares memory with the event")
	}
}

func TestStatus_String(t *testing.T) {
	tests := map[Status]string{
		StatusIdle:    "idle",
		StatusLoading: "loading",
		StatusSuccess: "success",
		StatusError:   "error",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %q, want %q", status, got, want)
		}
	}
}
