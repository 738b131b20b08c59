package internal

// Status is the lifecycle of the most recently completed or started flow
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// State is everything the display needs. It only changes through Transition.
type State struct {
	Options      RequestOptions
	Status       Status
	Result       *SummaryResult
	ErrorMessage string
	Frequencies  FrequencyIndex
	History      SessionHistory
	Trending     []string
	InFlight     map[Source]bool
}

// NewState returns the idle state a session starts in
func NewState(opts RequestOptions, history SessionHistory) State {
	if history.Topics == nil {
		history.Topics = []string{}
	}
	return State{
		Options:     opts,
		Status:      StatusIdle,
		Frequencies: FrequencyIndex{},
		History:     history,
		InFlight:    map[Source]bool{},
	}
}

// Loading reports whether any flow has a request outstanding
func (s State) Loading() bool {
	for _, pending := range s.InFlight {
		if pending {
			return true
		}
	}
	return false
}

func (s State) withInFlight(source Source, pending bool) State {
	inFlight := make(map[Source]bool, len(s.InFlight)+1)
	for k, v := range s.InFlight {
		if v {
			inFlight[k] = v
		}
	}
	if pending {
		inFlight[source] = true
	} else {
		delete(inFlight, source)
	}
	s.InFlight = inFlight
	return s
}

// Event is an input to Transition
type Event interface {
	event()
}

// SubmitEvent asks for a summary with the given options
type SubmitEvent struct {
	Options RequestOptions
}

// CompletedEvent carries the outcome of a dispatched request
type CompletedEvent struct {
	Options RequestOptions
	Result  *SummaryResult
	Err     error
}

// ToggleThemeEvent flips between light and dark
type ToggleThemeEvent struct{}

// PickHistoryEvent selects a previous topic
type PickHistoryEvent struct {
	Topic string
}

// SetOptionsEvent replaces the edited options
type SetOptionsEvent struct {
	Options RequestOptions
}

// HistoryLoadedEvent installs the history read at startup
type HistoryLoadedEvent struct {
	History SessionHistory
}

// TrendingLoadedEvent installs trending topic suggestions
type TrendingLoadedEvent struct {
	Topics []string
}

func (SubmitEvent) event()         {}
func (CompletedEvent) event()      {}
func (ToggleThemeEvent) event()    {}
func (PickHistoryEvent) event()    {}
func (SetOptionsEvent) event()     {}
func (HistoryLoadedEvent) event()  {}
func (TrendingLoadedEvent) event() {}

// Effect is work Transition asks the caller to perform
type Effect interface {
	effect()
}

// DispatchEffect sends a request
type DispatchEffect struct {
	Options RequestOptions
}

// RecordTopicEffect saves a topic to the history store
type RecordTopicEffect struct {
	Topic string
}

// PersistThemeEffect saves the theme preference
type PersistThemeEffect struct {
	Dark bool
}

func (DispatchEffect) effect()     {}
func (RecordTopicEffect) effect()  {}
func (PersistThemeEffect) effect() {}

// Transition computes the next state for ev. It performs no I/O; the returned
// effect, if any, is for the caller to run.
func Transition(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case SubmitEvent:
		return submit(s, ev.Options)

	case CompletedEvent:
		return complete(s, ev)

	case ToggleThemeEvent:
		s.History.Dark = !s.History.Dark
		return s, PersistThemeEffect{Dark: s.History.Dark}

	case PickHistoryEvent:
		s.Options.Source = SourceTopic
		s.Options.Query = ev.Topic
		return s, nil

	case SetOptionsEvent:
		s.Options = ev.Options
		return s, nil

	case HistoryLoadedEvent:
		s.History = ev.History
		if s.History.Topics == nil {
			s.History.Topics = []string{}
		}
		return s, nil

	case TrendingLoadedEvent:
		s.Trending = append([]string(nil), ev.Topics...)
		return s, nil
	}

	return s, nil
}

func submit(s State, opts RequestOptions) (State, Effect) {
	s.Options = opts

	normalized, err := ValidateOptions(opts)
	if err != nil {
		s.Status = StatusError
		s.ErrorMessage = UserMessage(err)
		s.Result = nil
		s.Frequencies = FrequencyIndex{}
		return s, nil
	}

	if s.InFlight[normalized.Source] {
		return s, nil
	}

	s.Status = StatusLoading
	s.Result = nil
	s.ErrorMessage = ""
	s.Frequencies = FrequencyIndex{}
	s = s.withInFlight(normalized.Source, true)
	return s, DispatchEffect{Options: normalized}
}

func complete(s State, ev CompletedEvent) (State, Effect) {
	s = s.withInFlight(ev.Options.Source, false)

	if ev.Err != nil || ev.Result == nil {
		err := ev.Err
		if err == nil {
			err = &EmptyResultError{Source: ev.Options.Source, Query: ev.Options.Query}
		}
		s.Status = StatusError
		s.ErrorMessage = UserMessage(err)
		s.Result = nil
		s.Frequencies = FrequencyIndex{}
		return s, nil
	}

	s.Status = StatusSuccess
	s.Result = ev.Result
	s.ErrorMessage = ""
	s.Frequencies = Analyze(ev.Result.SummaryText)

	if ev.Options.Source == SourceTopic {
		s.History.Topics = PushTopic(s.History.Topics, ev.Options.Query)
		return s, RecordTopicEffect{Topic: ev.Options.Query}
	}
	return s, nil
}
