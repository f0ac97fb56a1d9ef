package tray

import (
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/codeGROOVE-dev/trayshield/pkg/menu"
)

type recordingHandler struct {
	mu        sync.Mutex
	toggles   int
	abouts    int
	exits     int
	destroyed int
}

func (h *recordingHandler) Toggle() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.toggles++
}

func (h *recordingHandler) About() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.abouts++
}

func (h *recordingHandler) Exit() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exits++
}

func (h *recordingHandler) Destroyed() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed++
}

func (h *recordingHandler) counts() (toggles, abouts, exits, destroyed int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.toggles, h.abouts, h.exits, h.destroyed
}

type fakeMenu struct {
	mu    sync.Mutex
	shown int
}

func (f *fakeMenu) ShowMenu() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown++
	return nil
}

// startSession runs a session on its own goroutine and waits until it is ready.
func startSession(t *testing.T, name string) (*Session, *MockSystray, *recordingHandler, <-chan struct{}) {
	t.Helper()
	sys := NewMockSystray()
	h := &recordingHandler{}
	s := New(sys, []byte("ico"), name, menu.Build(name, menu.DefaultLabels()), h, nil)

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	select {
	case <-s.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("session never became ready")
	}
	return s, sys, h, done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tray loop did not finish")
	}
}

func TestSessionRegistersIconTooltipAndMenu(t *testing.T) {
	s, sys, _, done := startSession(t, "MyApp")

	if got := sys.Tooltip(); got != "MyApp" {
		t.Errorf("tooltip = %q, want %q", got, "MyApp")
	}
	if string(sys.Icon()) != "ico" {
		t.Errorf("icon = %q, want supplied icon", sys.Icon())
	}

	items := sys.Items()
	want := []struct {
		title     string
		disabled  bool
		separator bool
	}{
		{title: "MyApp", disabled: true},
		{title: "About..."},
		{separator: true},
		{title: "Show/Hide"},
		{title: "Exit"},
	}
	if len(items) != len(want) {
		t.Fatalf("menu has %d items, want %d", len(items), len(want))
	}
	for i, w := range want {
		if items[i].IsSeparator() != w.separator {
			t.Errorf("item %d separator = %v, want %v", i, items[i].IsSeparator(), w.separator)
			continue
		}
		if w.separator {
			continue
		}
		if items[i].Title() != w.title || items[i].Disabled() != w.disabled {
			t.Errorf("item %d = %q disabled=%v, want %q disabled=%v",
				i, items[i].Title(), items[i].Disabled(), w.title, w.disabled)
		}
	}

	s.RequestClose()
	waitDone(t, done)
}

func TestSessionClicks(t *testing.T) {
	s, sys, h, done := startSession(t, "MyApp")

	sys.LeftClick()
	sys.LeftClick()
	m := &fakeMenu{}
	sys.RightClick(m)
	sys.RightClick(nil) // platforms without a menu handle must not crash

	if toggles, _, _, _ := h.counts(); toggles != 2 {
		t.Errorf("toggles = %d, want 2", toggles)
	}
	if m.shown != 1 {
		t.Errorf("menu shown %d times, want 1", m.shown)
	}

	s.RequestClose()
	waitDone(t, done)
}

func TestSessionRightClickReusesMenu(t *testing.T) {
	tests := []struct {
		name   string
		clicks int
	}{
		{name: "one right click", clicks: 1},
		{name: "repeated right clicks", clicks: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, sys, _, done := startSession(t, "MyApp")
			before := len(sys.Items())

			m := &fakeMenu{}
			for range tt.clicks {
				sys.RightClick(m)
			}

			if n := sys.MenuBuilds(); n != 1 {
				t.Errorf("menu built %d times, want 1", n)
			}
			if got := len(sys.Items()); got != before {
				t.Errorf("menu has %d items after right clicks, want %d", got, before)
			}
			m.mu.Lock()
			shown := m.shown
			m.mu.Unlock()
			if shown != tt.clicks {
				t.Errorf("menu shown %d times, want %d", shown, tt.clicks)
			}

			s.RequestClose()
			waitDone(t, done)
		})
	}
}

func TestSessionMenuSelections(t *testing.T) {
	s, sys, h, done := startSession(t, "MyApp")

	if sys.Select("MyApp") {
		t.Error("title item must not be selectable")
	}
	if !sys.Select("About...") {
		t.Fatal("About item not selectable")
	}
	if !sys.Select("Show/Hide") {
		t.Fatal("Show/Hide item not selectable")
	}
	if !sys.Select("Exit") {
		t.Fatal("Exit item not selectable")
	}

	toggles, abouts, exits, _ := h.counts()
	if toggles != 1 || abouts != 1 || exits != 1 {
		t.Errorf("toggles=%d abouts=%d exits=%d, want 1 each", toggles, abouts, exits)
	}

	s.RequestClose()
	waitDone(t, done)
}

func TestSessionCloseDeliversDestroyOnce(t *testing.T) {
	s, sys, h, done := startSession(t, "MyApp")

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RequestClose()
		}()
	}
	wg.Wait()
	waitDone(t, done)
	s.Destroy()
	s.Destroy()

	if _, _, _, destroyed := h.counts(); destroyed != 1 {
		t.Errorf("Destroyed called %d times, want 1", destroyed)
	}
	if n := sys.QuitCalls(); n != 1 {
		t.Errorf("Quit called %d times, want 1", n)
	}
}

func TestSessionCloseBeforeReady(t *testing.T) {
	sys := NewMockSystray()
	h := &recordingHandler{}
	s := New(sys, nil, "early", menu.Build("early", menu.Labels{}), h, nil)
	s.RequestClose()

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()
	waitDone(t, done)

	if _, _, _, destroyed := h.counts(); destroyed != 1 {
		t.Errorf("Destroyed called %d times, want 1", destroyed)
	}
	if sys.Icon() != nil {
		t.Error("empty icon should not be registered")
	}
}

func TestSessionCloseWhenRegistrationFails(t *testing.T) {
	tests := []struct {
		name        string
		closeBefore bool
	}{
		{name: "close while loop runs", closeBefore: false},
		{name: "close before loop starts", closeBefore: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewMockSystray()
			sys.FailRegistration()
			h := &recordingHandler{}
			s := New(sys, []byte("ico"), "broken", menu.Build("broken", menu.Labels{}), h, nil)
			s.SetReadyTimeout(20 * time.Millisecond)
			if tt.closeBefore {
				s.RequestClose()
			}

			done := make(chan struct{})
			go func() {
				s.Run()
				close(done)
			}()
			if !tt.closeBefore {
				s.RequestClose()
				s.RequestClose()
			}
			waitDone(t, done)
			s.Destroy()

			select {
			case <-s.Ready():
				t.Error("session reported ready although registration failed")
			default:
			}
			if n := sys.QuitCalls(); n != 1 {
				t.Errorf("Quit called %d times, want 1", n)
			}
			if _, _, _, destroyed := h.counts(); destroyed != 1 {
				t.Errorf("Destroyed called %d times, want 1", destroyed)
			}
			if sys.Icon() != nil {
				t.Error("icon registered although onReady never ran")
			}
		})
	}
}

func TestSessionSetReadyTimeoutIgnoresNonPositive(t *testing.T) {
	s := New(NewMockSystray(), nil, "x", nil, &recordingHandler{}, nil)
	s.SetReadyTimeout(0)
	s.SetReadyTimeout(-time.Second)
	if s.readyTimeout != DefaultReadyTimeout {
		t.Errorf("readyTimeout = %v, want %v", s.readyTimeout, DefaultReadyTimeout)
	}
}

func TestSessionTooltipTruncated(t *testing.T) {
	name := strings.Repeat("界", 200)
	s, sys, _, done := startSession(t, name)

	tip := sys.Tooltip()
	if n := len(utf16.Encode([]rune(tip))); n > MaxTooltipUnits {
		t.Errorf("tooltip is %d UTF-16 units, want <= %d", n, MaxTooltipUnits)
	}
	if !strings.HasPrefix(name, tip) {
		t.Error("tooltip is not a prefix of the display name")
	}

	s.RequestClose()
	waitDone(t, done)
}

func TestTruncateTooltip(t *testing.T) {
	emoji := "😀" // two UTF-16 units
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "MyApp", max: 127, want: "MyApp"},
		{name: "empty", in: "", max: 127, want: ""},
		{name: "exact", in: "abcd", max: 4, want: "abcd"},
		{name: "cut ascii", in: "abcdef", max: 4, want: "abcd"},
		{name: "no split surrogate", in: "abc" + emoji, max: 4, want: "abc"},
		{name: "pair fits", in: "ab" + emoji + "c", max: 4, want: "ab" + emoji},
		{name: "long", in: strings.Repeat("x", 300), max: MaxTooltipUnits, want: strings.Repeat("x", MaxTooltipUnits)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateTooltip(tt.in, tt.max); got != tt.want {
				t.Errorf("TruncateTooltip(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
