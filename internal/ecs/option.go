package ecs

import "go.uber.org/zap"

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for lifecycle and system diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithIDGenerator shares an id space between worlds, e.g. when an editor
// moves entities between a scene and its preview.
func WithIDGenerator(ids *IDGenerator) Option {
	return func(w *World) {
		if ids != nil {
			w.ids = ids
		}
	}
}

// WithFaultHandler decides what happens after a system fails mid-frame.
func WithFaultHandler(h FaultHandler) Option {
	return func(w *World) {
		if h != nil {
			w.onFault = h
		}
	}
}
