// Package logging sets up the process logger: a text handler on stderr plus
// an append-only log file. Records fan out to named sinks, and a sink whose
// writes fail is muted for the rest of the process. A detached supervisor has
// no valid stderr, so after its first failed write only the file is written.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Sink is one named log destination.
type Sink struct {
	Name    string
	Handler slog.Handler
}

// sinkState is shared by every handler derived from the same FanOut, so a
// sink muted through a logger built with With stays muted everywhere.
type sinkState struct {
	name  string
	muted atomic.Bool
}

type fanSink struct {
	handler slog.Handler
	state   *sinkState
}

// FanOut is a slog.Handler that writes each record to every live sink.
type FanOut struct {
	sinks []fanSink
}

// NewFanOut returns a handler writing to sinks in order. Sinks with a nil
// handler are skipped.
func NewFanOut(sinks ...Sink) *FanOut {
	f := &FanOut{}
	for _, s := range sinks {
		if s.Handler == nil {
			continue
		}
		f.sinks = append(f.sinks, fanSink{handler: s.Handler, state: &sinkState{name: s.Name}})
	}
	return f
}

// Muted returns the names of sinks that stopped receiving records after a
// write error.
func (f *FanOut) Muted() []string {
	var names []string
	for _, s := range f.sinks {
		if s.state.muted.Load() {
			names = append(names, s.state.name)
		}
	}
	return names
}

// Enabled reports whether any live sink wants records at level.
func (f *FanOut) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range f.sinks {
		if !s.state.muted.Load() && s.handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle writes record to every live sink. A sink that fails is muted and the
// failure is reported once to the sinks still working. Handle never returns
// an error while at least one sink is live.
//
//nolint:gocritic // record is an interface parameter, cannot change to pointer
func (f *FanOut) Handle(ctx context.Context, record slog.Record) error {
	var lastErr error
	live := 0
	for _, s := range f.sinks {
		if s.state.muted.Load() || !s.handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := s.handler.Handle(ctx, record.Clone()); err != nil {
			lastErr = err
			if s.state.muted.CompareAndSwap(false, true) {
				f.reportMuted(ctx, s.state.name, err)
			}
			continue
		}
		live++
	}
	if live == 0 {
		return lastErr
	}
	return nil
}

func (f *FanOut) reportMuted(ctx context.Context, name string, cause error) {
	r := slog.NewRecord(time.Now(), slog.LevelWarn, "[LOG] Log destination failed, muting it", 0)
	r.AddAttrs(slog.String("sink", name), slog.Any("error", cause))
	for _, s := range f.sinks {
		if s.state.muted.Load() || !s.handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.handler.Handle(ctx, r.Clone()); err != nil {
			s.state.muted.Store(true)
		}
	}
}

// WithAttrs returns a FanOut whose sinks carry attrs. Mute state is shared
// with f.
func (f *FanOut) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup returns a FanOut whose sinks nest later attributes under name.
func (f *FanOut) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	return f.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f *FanOut) derive(fn func(slog.Handler) slog.Handler) *FanOut {
	sinks := make([]fanSink, len(f.sinks))
	for i, s := range f.sinks {
		sinks[i] = fanSink{handler: fn(s.handler), state: s.state}
	}
	return &FanOut{sinks: sinks}
}
