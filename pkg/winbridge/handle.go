// Package winbridge turns an opaque cross-process console window handle into a
// validated reference the supervisor can act on.
//
// A Handle is captured once by the launcher and handed to the supervisor as a
// hexadecimal token. The supervisor treats that first handle as authoritative
// for its whole life: if Windows ever reused a destroyed window's numeric value
// for an unrelated window, IsAlive would report the new window as alive. This
// is an accepted platform assumption and is deliberately not guarded against.
package winbridge

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

var (
	// ErrInvalidHandle is returned for malformed or zero handle tokens.
	ErrInvalidHandle = errors.New("invalid window handle")
	// ErrNotAlive is returned when an operation targets a window that no longer exists.
	ErrNotAlive = errors.New("window no longer exists")
	// ErrUnsupported is returned on platforms without Win32 console windows.
	ErrUnsupported = errors.New("console windows are not supported on this platform")
)

// Handle is a pointer-sized native window handle.
type Handle uintptr

// String encodes the handle the way the launcher passes it to the supervisor.
func (h Handle) String() string {
	return "0x" + strconv.FormatUint(uint64(h), 16)
}

// ParseHandle decodes a hexadecimal token, optionally prefixed with "0x".
// Zero and out-of-range values are rejected.
func ParseHandle(token string) (Handle, error) {
	s := strings.TrimSpace(token)
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty token %q", ErrInvalidHandle, token)
	}
	v, err := strconv.ParseUint(s, 16, bits.UintSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidHandle, token, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: zero handle", ErrInvalidHandle)
	}
	return Handle(v), nil
}
