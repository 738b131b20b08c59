package tui

// Key binding constants used in handleKey.
const (
	KeyQuit          = "ctrl+c"
	KeyEsc           = "esc"
	KeySubmit        = "enter"
	KeyNextSource    = "tab"
	KeyPrevSource    = "shift+tab"
	KeyCycleFormat   = "ctrl+f"
	KeyCycleLength   = "ctrl+l"
	KeySentiment     = "ctrl+e"
	KeyCycleTemplate = "ctrl+t"
	KeyToggleTheme   = "ctrl+d"
	KeySuggest       = "ctrl+r"
)

// historyKeys pick a recent topic by position.
var historyKeys = map[string]int{
	"alt+1": 0,
	"alt+2": 1,
	"alt+3": 2,
	"alt+4": 3,
	"alt+5": 4,
}
