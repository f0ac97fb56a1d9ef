package lifecycle

import "sync"

// Signal is a one-shot, idempotent shutdown event.
type Signal struct {
	done chan struct{}
	once sync.Once
}

// NewSignal returns an unfired signal.
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Fire fires the signal. Only the first call has an effect; it reports
// whether this call was the one that fired it.
func (s *Signal) Fire() bool {
	fired := false
	s.once.Do(func() {
		close(s.done)
		fired = true
	})
	return fired
}

// Done is closed once the signal has fired.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Fired reports whether the signal has fired.
func (s *Signal) Fired() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
