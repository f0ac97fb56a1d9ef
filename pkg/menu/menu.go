// Package menu describes the tray context menu and maps selections to actions.
//
// The item order and the default marking are fixed: a disabled title showing
// the display name, About, a separator, Show/Hide (the default action, same as
// a left click on the icon), and Exit.
package menu

// ID identifies a selectable command in the context menu.
type ID uint32

// Command identifiers delivered with a command-selected event.
const (
	IDTitle  ID = 1001
	IDToggle ID = 1002
	IDExit   ID = 1003
	IDAbout  ID = 1004
)

// Action is the high-level intent behind a menu selection.
type Action int

const (
	ActionNone Action = iota
	ActionAbout
	ActionToggle
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionAbout:
		return "about"
	case ActionToggle:
		return "toggle"
	case ActionExit:
		return "exit"
	default:
		return "none"
	}
}

// Labels holds the user-visible text for the fixed menu entries.
type Labels struct {
	About        string `json:"about"`
	Toggle       string `json:"toggle"`
	Exit         string `json:"exit"`
	FallbackName string `json:"fallback_name"`
}

// DefaultLabels returns the built-in English labels.
func DefaultLabels() Labels {
	return Labels{
		About:        "About...",
		Toggle:       "Show/Hide",
		Exit:         "Exit",
		FallbackName: "Console App",
	}
}

// WithDefaults fills empty labels from DefaultLabels.
func (l Labels) WithDefaults() Labels {
	d := DefaultLabels()
	if l.About == "" {
		l.About = d.About
	}
	if l.Toggle == "" {
		l.Toggle = d.Toggle
	}
	if l.Exit == "" {
		l.Exit = d.Exit
	}
	if l.FallbackName == "" {
		l.FallbackName = d.FallbackName
	}
	return l
}

// Item is one entry of the context menu.
type Item struct {
	Title     string
	Tooltip   string
	ID        ID
	Disabled  bool
	Default   bool
	Separator bool
}

// Build returns the context menu for displayName in display order.
func Build(displayName string, labels Labels) []Item {
	labels = labels.WithDefaults()
	if displayName == "" {
		displayName = labels.FallbackName
	}
	return []Item{
		{ID: IDTitle, Title: displayName, Tooltip: displayName, Disabled: true},
		{ID: IDAbout, Title: labels.About, Tooltip: labels.About},
		{Separator: true},
		{ID: IDToggle, Title: labels.Toggle, Tooltip: labels.Toggle, Default: true},
		{ID: IDExit, Title: labels.Exit, Tooltip: labels.Exit},
	}
}

// ActionFor maps a selected command to its action. The title item and unknown
// ids map to ActionNone.
func ActionFor(id ID) Action {
	switch id {
	case IDAbout:
		return ActionAbout
	case IDToggle:
		return ActionToggle
	case IDExit:
		return ActionExit
	default:
		return ActionNone
	}
}

// DefaultItem returns the item activated by a default click, if any.
func DefaultItem(items []Item) (Item, bool) {
	for _, it := range items {
		if it.Default && !it.Disabled && !it.Separator {
			return it, true
		}
	}
	return Item{}, false
}
