package tray

import "github.com/energye/systray"

// MenuItem is implemented by both real systray menu items and test mocks.
type MenuItem interface {
	Disable()
	Enable()
	SetTitle(string)
	SetTooltip(string)
	Click(func())
}

// RealMenuItem wraps a real systray.MenuItem.
type RealMenuItem struct {
	*systray.MenuItem
}

var _ MenuItem = (*RealMenuItem)(nil)

// Disable disables the menu item.
func (r *RealMenuItem) Disable() {
	r.MenuItem.Disable()
}

// Enable enables the menu item.
func (r *RealMenuItem) Enable() {
	r.MenuItem.Enable()
}

// SetTitle sets the menu item title.
func (r *RealMenuItem) SetTitle(title string) {
	r.MenuItem.SetTitle(title)
}

// SetTooltip sets the menu item tooltip.
func (r *RealMenuItem) SetTooltip(tooltip string) {
	r.MenuItem.SetTooltip(tooltip)
}

// Click sets the click handler.
func (r *RealMenuItem) Click(handler func()) {
	r.MenuItem.Click(handler)
}

// MockMenuItem implements MenuItem for testing without calling systray functions.
type MockMenuItem struct {
	clickHandler func()
	title        string
	tooltip      string
	disabled     bool
	separator    bool
}

var _ MenuItem = (*MockMenuItem)(nil)

// Disable marks the item as disabled.
func (m *MockMenuItem) Disable() {
	m.disabled = true
}

// Enable marks the item as enabled.
func (m *MockMenuItem) Enable() {
	m.disabled = false
}

// SetTitle sets the title.
func (m *MockMenuItem) SetTitle(title string) {
	m.title = title
}

// SetTooltip sets the tooltip.
func (m *MockMenuItem) SetTooltip(tooltip string) {
	m.tooltip = tooltip
}

// Click sets the click handler.
func (m *MockMenuItem) Click(handler func()) {
	m.clickHandler = handler
}

// Title returns the item title.
func (m *MockMenuItem) Title() string { return m.title }

// Disabled reports whether the item is disabled.
func (m *MockMenuItem) Disabled() bool { return m.disabled }

// IsSeparator reports whether the item is a separator.
func (m *MockMenuItem) IsSeparator() bool { return m.separator }
