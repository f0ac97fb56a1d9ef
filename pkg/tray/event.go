package tray

import (
	"github.com/codeGROOVE-dev/trayshield/pkg/menu"
	"github.com/energye/systray"
)

// Kind tags the variant of an Event.
type Kind int

const (
	// KindTrayInput is a click on the tray icon.
	KindTrayInput Kind = iota
	// KindCommand is a context menu selection.
	KindCommand
	// KindDestroy is the message-target window going away.
	KindDestroy
)

// Button identifies which mouse button produced a tray input event.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Event is produced by the adapter at the native tray boundary and consumed
// by Dispatch. Only the fields belonging to Kind are meaningful.
type Event struct {
	Menu    systray.IMenu // context menu handle supplied with right clicks; may be nil
	Kind    Kind
	Button  Button
	Command menu.ID
}

// TrayInput returns a click event.
func TrayInput(b Button, m systray.IMenu) Event {
	return Event{Kind: KindTrayInput, Button: b, Menu: m}
}

// Command returns a menu selection event.
func Command(id menu.ID) Event {
	return Event{Kind: KindCommand, Command: id}
}

// Destroy returns the message-target teardown event.
func Destroy() Event {
	return Event{Kind: KindDestroy}
}

// Intent is what the session should do in response to an Event.
type Intent int

const (
	IntentNone Intent = iota
	IntentOpenMenu
	IntentToggle
	IntentAbout
	IntentExit
	IntentQuit
)

func (i Intent) String() string {
	switch i {
	case IntentOpenMenu:
		return "open-menu"
	case IntentToggle:
		return "toggle"
	case IntentAbout:
		return "about"
	case IntentExit:
		return "exit"
	case IntentQuit:
		return "quit"
	default:
		return "none"
	}
}

// Dispatch maps an event to an intent. It has no side effects.
func Dispatch(ev Event) Intent {
	switch ev.Kind {
	case KindTrayInput:
		switch ev.Button {
		case ButtonRight:
			return IntentOpenMenu
		case ButtonLeft:
			return IntentToggle
		}
	case KindCommand:
		switch menu.ActionFor(ev.Command) {
		case menu.ActionAbout:
			return IntentAbout
		case menu.ActionToggle:
			return IntentToggle
		case menu.ActionExit:
			return IntentExit
		case menu.ActionNone:
		}
	case KindDestroy:
		return IntentQuit
	}
	return IntentNone
}
