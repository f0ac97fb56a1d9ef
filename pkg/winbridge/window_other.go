//go:build !windows

package winbridge

// Win32Window is unavailable off Windows; Open always fails.
type Win32Window struct{}

var _ Window = (*Win32Window)(nil)

// Open reports ErrUnsupported on platforms without Win32 console windows.
func Open(h Handle) (*Win32Window, error) {
	if h == 0 {
		return nil, ErrInvalidHandle
	}
	return nil, ErrUnsupported
}

func (*Win32Window) Handle() Handle { return 0 }
func (*Win32Window) IsAlive() bool { return false }
func (*Win32Window) IsVisible() bool { return false }
func (*Win32Window) IsMinimized() bool { return false }
func (*Win32Window) Hide() error { return ErrUnsupported }
func (*Win32Window) Restore() error { return ErrUnsupported }
func (*Win32Window) SetCloseEnabled(bool) error { return ErrUnsupported }
func (*Win32Window) RequestClose() error { return ErrUnsupported }
