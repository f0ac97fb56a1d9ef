package tray

import (
	"log/slog"
	"sync"

	"github.com/energye/systray"
)

// SystrayInterface abstracts the native tray so the session can be tested
// without a window system.
type SystrayInterface interface {
	Run(onReady, onExit func())
	Quit()
	SetIcon(iconBytes []byte)
	SetTooltip(tooltip string)
	ResetMenu()
	AddMenuItem(title, tooltip string) MenuItem
	AddSeparator()
	SetOnClick(fn func(menu systray.IMenu))
	SetOnRClick(fn func(menu systray.IMenu))
}

// RealSystray implements SystrayInterface using the energye/systray library.
// Run owns the native message-target window and pumps its message queue;
// Quit posts a close request to it and is safe from any goroutine.
type RealSystray struct{}

func (*RealSystray) Run(onReady, onExit func()) {
	systray.Run(onReady, onExit)
}

func (*RealSystray) Quit() {
	slog.Debug("[SYSTRAY] Quit called")
	systray.Quit()
}

func (*RealSystray) SetIcon(iconBytes []byte) {
	systray.SetIcon(iconBytes)
}

func (*RealSystray) SetTooltip(tooltip string) {
	slog.Debug("[SYSTRAY] SetTooltip called", "tooltip", tooltip, "len", len(tooltip))
	systray.SetTooltip(tooltip)
}

func (*RealSystray) ResetMenu() {
	systray.ResetMenu()
}

func (*RealSystray) AddMenuItem(title, tooltip string) MenuItem {
	slog.Debug("[SYSTRAY] AddMenuItem called", "title", title)
	return &RealMenuItem{MenuItem: systray.AddMenuItem(title, tooltip)}
}

func (*RealSystray) AddSeparator() {
	systray.AddSeparator()
}

func (*RealSystray) SetOnClick(fn func(menu systray.IMenu)) {
	systray.SetOnClick(fn)
}

func (*RealSystray) SetOnRClick(fn func(menu systray.IMenu)) {
	systray.SetOnRClick(fn)
}

// MockSystray implements SystrayInterface for testing. Run calls onReady,
// blocks until Quit, then calls onExit, mirroring the native loop.
type MockSystray struct {
	onClick   func(menu systray.IMenu)
	onRClick  func(menu systray.IMenu)
	quit      chan struct{}
	tooltip   string
	icon      []byte
	menuItems []*MockMenuItem
	quitCalls int
	resets    int
	mu        sync.Mutex
	quitOnce  sync.Once
	failReady bool
}

// NewMockSystray returns a mock ready to Run.
func NewMockSystray() *MockSystray {
	return &MockSystray{quit: make(chan struct{})}
}

// FailRegistration makes Run behave like a loop whose icon could not be
// registered: the message window runs and honors Quit, but onReady is never
// called.
func (m *MockSystray) FailRegistration() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failReady = true
}

func (m *MockSystray) Run(onReady, onExit func()) {
	m.mu.Lock()
	fail := m.failReady
	m.mu.Unlock()
	if !fail {
		onReady()
	}
	<-m.quit
	onExit()
}

func (m *MockSystray) Quit() {
	m.mu.Lock()
	m.quitCalls++
	m.mu.Unlock()
	m.quitOnce.Do(func() { close(m.quit) })
}

func (m *MockSystray) SetIcon(iconBytes []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.icon = iconBytes
}

func (m *MockSystray) SetTooltip(tooltip string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tooltip = tooltip
}

func (m *MockSystray) ResetMenu() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
	m.menuItems = nil
}

func (m *MockSystray) AddMenuItem(title, tooltip string) MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := &MockMenuItem{title: title, tooltip: tooltip}
	m.menuItems = append(m.menuItems, item)
	return item
}

func (m *MockSystray) AddSeparator() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menuItems = append(m.menuItems, &MockMenuItem{title: "---", separator: true})
}

func (m *MockSystray) SetOnClick(fn func(menu systray.IMenu)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClick = fn
}

func (m *MockSystray) SetOnRClick(fn func(menu systray.IMenu)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRClick = fn
}

// LeftClick simulates a left click on the tray icon.
func (m *MockSystray) LeftClick() {
	m.mu.Lock()
	fn := m.onClick
	m.mu.Unlock()
	if fn != nil {
		fn(nil)
	}
}

// RightClick simulates a right click on the tray icon, passing menu to the handler.
func (m *MockSystray) RightClick(menu systray.IMenu) {
	m.mu.Lock()
	fn := m.onRClick
	m.mu.Unlock()
	if fn != nil {
		fn(menu)
	}
}

// Select simulates choosing the menu item with the given title.
// It reports false when no enabled item has that title.
func (m *MockSystray) Select(title string) bool {
	m.mu.Lock()
	var target *MockMenuItem
	for _, it := range m.menuItems {
		if it.title == title && !it.separator {
			target = it
			break
		}
	}
	m.mu.Unlock()
	if target == nil || target.disabled || target.clickHandler == nil {
		return false
	}
	target.clickHandler()
	return true
}

// Tooltip returns the last tooltip set.
func (m *MockSystray) Tooltip() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tooltip
}

// Icon returns the last icon set.
func (m *MockSystray) Icon() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.icon
}

// Items returns a snapshot of the menu items in order.
func (m *MockSystray) Items() []MockMenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockMenuItem, 0, len(m.menuItems))
	for _, it := range m.menuItems {
		out = append(out, MockMenuItem{
			title:     it.title,
			tooltip:   it.tooltip,
			disabled:  it.disabled,
			separator: it.separator,
		})
	}
	return out
}

// MenuBuilds reports how many times the menu was reset for a rebuild.
func (m *MockSystray) MenuBuilds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

// QuitCalls reports how many times Quit was invoked.
func (m *MockSystray) QuitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quitCalls
}
