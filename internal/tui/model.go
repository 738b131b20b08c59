package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/thread-digest/internal"
)

// Model is the root bubbletea model for the interactive summarizer.
type Model struct {
	controller *internal.Controller
	ctx        context.Context

	input     textinput.Model
	spinner   spinner.Model
	wordCloud WordCloud

	// index of the next trending suggestion offered by ctrl+r
	suggestion int

	width    int
	height   int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithWordCloud sets the frequency visualization. nil hides it.
func WithWordCloud(wc WordCloud) Option {
	return func(m *Model) {
		m.wordCloud = wc
	}
}

// WithContext sets the context dispatches run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// New creates a Model driving controller.
func New(controller *internal.Controller, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = 20000
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		controller: controller,
		ctx:        context.Background(),
		input:      ti,
		spinner:    sp,
		wordCloud:  BarCloud{Max: 10},
		width:      80,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.input.SetValue(controller.State().Options.Query)
	m.syncInput()
	return m
}

// Init fetches trending topics. Saved history must already be applied to
// the controller so the first frame uses the persisted theme.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadTrendingCmd(m.ctx, m.controller.Trending()),
		textinput.Blink,
	)
}

func loadTrendingCmd(ctx context.Context, src internal.TrendingSource) tea.Cmd {
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		topics, err := src.TrendingTopics(ctx)
		if err != nil {
			internal.LogDebug("Trending topics unavailable: %v", err)
			return TrendingLoadedMsg{}
		}
		return TrendingLoadedMsg{Topics: topics}
	}
}

// fetchCmd runs the request off the event loop and reports back.
func fetchCmd(ctx context.Context, c *internal.Controller, opts internal.RequestOptions) tea.Cmd {
	return func() tea.Msg {
		return SummaryCompletedMsg{Event: c.Fetch(ctx, opts)}
	}
}

// State returns the controller's current state.
func (m Model) State() internal.State {
	return m.controller.State()
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, msg.Width-12)
		return m, nil

	case TrendingLoadedMsg:
		m.controller.Apply(internal.TrendingLoadedEvent{Topics: msg.Topics})
		return m, nil

	case SummaryCompletedMsg:
		m.controller.Apply(msg.Event)
		return m, nil

	case spinner.TickMsg:
		if !m.State().Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	opts := m.State().Options

	if idx, ok := historyKeys[key]; ok {
		topics := m.State().History.Topics
		if idx < len(topics) {
			state, _ := m.controller.Apply(internal.PickHistoryEvent{Topic: topics[idx]})
			m.input.SetValue(state.Options.Query)
			m.input.CursorEnd()
			m.syncInput()
		}
		return m, nil
	}

	switch key {
	case KeyQuit, KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case KeySubmit:
		return m.submit()

	case KeyNextSource, KeyPrevSource:
		step := 1
		if key == KeyPrevSource {
			step = len(internal.Sources) - 1
		}
		opts.Source = internal.Sources[(sourceIndex(opts.Source)+step)%len(internal.Sources)]
		opts.Query = ""
		m.input.SetValue("")
		m.setOptions(opts)
		m.syncInput()
		return m, nil

	case KeyCycleFormat:
		opts.Format = cycle([]internal.Format{internal.FormatPlain, internal.FormatBullets, internal.FormatTLDR}, opts.Format)
		m.setOptions(opts)
		return m, nil

	case KeyCycleLength:
		opts.Length = cycle([]internal.Length{internal.LengthShort, internal.LengthMedium, internal.LengthLong}, opts.Length)
		m.setOptions(opts)
		return m, nil

	case KeySentiment:
		opts.Sentiment = !opts.Sentiment
		m.setOptions(opts)
		return m, nil

	case KeyCycleTemplate:
		opts.Template = cycle(internal.Templates, opts.Template)
		m.setOptions(opts)
		return m, nil

	case KeyToggleTheme:
		m.controller.Apply(internal.ToggleThemeEvent{})
		return m, nil

	case KeySuggest:
		trending := m.State().Trending
		if len(trending) == 0 || opts.Source != internal.SourceTopic {
			return m, nil
		}
		topic := trending[m.suggestion%len(trending)]
		m.suggestion++
		m.input.SetValue(topic)
		m.input.CursorEnd()
		opts.Query = topic
		m.setOptions(opts)
		return m, nil
	}

	if opts.Source == internal.SourceAggregator {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != opts.Query {
		opts.Query = m.input.Value()
		m.setOptions(opts)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	opts := m.State().Options
	opts.Query = m.input.Value()

	_, dispatch := m.controller.Apply(internal.SubmitEvent{Options: opts})
	if dispatch == nil {
		return m, nil
	}
	return m, tea.Batch(fetchCmd(m.ctx, m.controller, dispatch.Options), m.spinner.Tick)
}

func (m *Model) setOptions(opts internal.RequestOptions) {
	m.controller.Apply(internal.SetOptionsEvent{Options: opts})
}

// syncInput matches the input's placeholder and focus to the current flow.
func (m *Model) syncInput() {
	switch m.State().Options.Source {
	case internal.SourceTopic:
		m.input.Placeholder = "Enter a topic (e.g. golang)"
		m.input.Focus()
	case internal.SourceURL:
		m.input.Placeholder = "https://..."
		m.input.Focus()
	case internal.SourceText:
		m.input.Placeholder = "Paste text to summarize"
		m.input.Focus()
	default:
		m.input.Placeholder = "No input needed"
		m.input.Blur()
	}
}

func sourceIndex(s internal.Source) int {
	for i, src := range internal.Sources {
		if src == s {
			return i
		}
	}
	return 0
}

func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.State()
	theme := ThemeFor(state.History.Dark)
	width := max(40, m.width-2)

	var b strings.Builder

	mode := "light"
	if state.History.Dark {
		mode = "dark"
	}
	b.WriteString(theme.Title.Render("Thread Digest") + theme.Dim.Render("  "+mode) + "\n\n")

	b.WriteString(m.renderTabs(state, theme) + "\n\n")

	if state.Options.Source == internal.SourceAggregator {
		b.WriteString(theme.Dim.Render("Summarizes the current Hacker News front page.") + "\n")
	} else {
		b.WriteString(m.input.View() + "\n")
	}

	if state.Options.Source == internal.SourceTopic {
		b.WriteString("\n" + renderOptions(state.Options, theme) + "\n")
		if len(state.History.Topics) > 0 {
			b.WriteString(renderHistory(state.History.Topics, theme) + "\n")
		}
		if len(state.Trending) > 0 {
			b.WriteString(theme.Label.Render("Trending: ") + theme.Dim.Render(strings.Join(state.Trending, ", ")) + "\n")
		}
	}
	b.WriteString("\n")

	switch {
	case state.Loading():
		b.WriteString(theme.Spinner.Render(m.spinner.View()) + " Generating summary...\n")
	case state.Status == internal.StatusError:
		b.WriteString(theme.Error.Render(state.ErrorMessage) + "\n")
	}

	if state.Result != nil {
		b.WriteString(m.renderResult(state, theme, width))
	}

	b.WriteString("\n" + renderFooter(theme))
	return b.String()
}

func (m Model) renderTabs(state internal.State, theme Theme) string {
	tabs := make([]string, 0, len(internal.Sources))
	for _, src := range internal.Sources {
		label := sourceTabLabel(src)
		if state.InFlight[src] {
			label += " …"
		}
		if src == state.Options.Source {
			tabs = append(tabs, theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, theme.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func sourceTabLabel(s internal.Source) string {
	switch s {
	case internal.SourceTopic:
		return "Topic"
	case internal.SourceAggregator:
		return "Hacker News"
	case internal.SourceURL:
		return "URL"
	default:
		return "Text"
	}
}

func renderOptions(opts internal.RequestOptions, theme Theme) string {
	sentiment := "off"
	if opts.Sentiment {
		sentiment = "on"
	}
	parts := []string{
		theme.Label.Render("Format ") + theme.Value.Render(opts.Format.Label()),
		theme.Label.Render("Length ") + theme.Value.Render(opts.Length.Label()),
		theme.Label.Render("Sentiment ") + theme.Value.Render(sentiment),
		theme.Label.Render("Template ") + theme.Value.Render(opts.Template.Label()),
	}
	return strings.Join(parts, theme.Dim.Render("  │  "))
}

func renderHistory(topics []string, theme Theme) string {
	parts := make([]string, len(topics))
	for i, t := range topics {
		parts[i] = theme.FooterKey.Render(fmt.Sprintf("alt+%d", i+1)) + " " + t
	}
	return theme.Label.Render("Recent: ") + strings.Join(parts, "  ")
}

func (m Model) renderResult(state internal.State, theme Theme, width int) string {
	result := state.Result
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(wrap.Render(theme.Summary.Render(result.SummaryText)) + "\n")

	if result.UISummary != "" {
		b.WriteString("\n" + wrap.Render(theme.Synopsis.Render(result.UISummary)) + "\n")
	}
	if result.GeneratedAt != nil {
		b.WriteString(theme.Dim.Render("Generated "+result.GeneratedAt.Local().Format(time.DateTime)) + "\n")
	}

	if m.wordCloud != nil && len(state.Frequencies) > 0 {
		if cloud := m.wordCloud.Render(state.Frequencies, width, theme); cloud != "" {
			b.WriteString("\n" + theme.Label.Render("Keywords") + "\n" + cloud + "\n")
		}
	}

	if len(result.Items) > 0 {
		b.WriteString("\n" + theme.Label.Render(fmt.Sprintf("Posts (%d)", len(result.Items))) + "\n")
		for _, item := range result.Items {
			b.WriteString(theme.PostTitle.Render("• "+item.Title) + "\n")
			if item.Text != "" {
				b.WriteString(wrap.Render(theme.Summary.Render("  "+excerpt(item.Text, 280))) + "\n")
			}
			if item.URL != "" {
				b.WriteString("  " + theme.Link.Render(item.URL) + "\n")
			}
		}
	}
	return b.String()
}

func excerpt(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}

func renderFooter(theme Theme) string {
	keys := []struct{ key, desc string }{
		{"enter", "summarize"},
		{"tab", "source"},
		{"^f", "format"},
		{"^l", "length"},
		{"^e", "sentiment"},
		{"^t", "template"},
		{"^r", "suggest"},
		{"^d", "theme"},
		{"esc", "quit"},
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = theme.FooterKey.Render(k.key) + " " + theme.Dim.Render(k.desc)
	}
	return strings.Join(parts, "  ")
}
