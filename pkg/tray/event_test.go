package tray

import (
	"testing"

	"github.com/codeGROOVE-dev/trayshield/pkg/menu"
)

func TestDispatch(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want Intent
	}{
		{name: "right click opens menu", ev: TrayInput(ButtonRight, nil), want: IntentOpenMenu},
		{name: "left click toggles", ev: TrayInput(ButtonLeft, nil), want: IntentToggle},
		{name: "about command", ev: Command(menu.IDAbout), want: IntentAbout},
		{name: "toggle command", ev: Command(menu.IDToggle), want: IntentToggle},
		{name: "exit command", ev: Command(menu.IDExit), want: IntentExit},
		{name: "title command ignored", ev: Command(menu.IDTitle), want: IntentNone},
		{name: "unknown command ignored", ev: Command(42), want: IntentNone},
		{name: "destroy quits", ev: Destroy(), want: IntentQuit},
		{name: "unknown button ignored", ev: Event{Kind: KindTrayInput, Button: Button(7)}, want: IntentNone},
		{name: "unknown kind ignored", ev: Event{Kind: Kind(9)}, want: IntentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dispatch(tt.ev); got != tt.want {
				t.Errorf("Dispatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultItemMatchesLeftClick(t *testing.T) {
	it, ok := menu.DefaultItem(menu.Build("x", menu.DefaultLabels()))
	if !ok {
		t.Fatal("no default menu item")
	}
	if Dispatch(Command(it.ID)) != Dispatch(TrayInput(ButtonLeft, nil)) {
		t.Error("default menu item and left click must produce the same intent")
	}
}
