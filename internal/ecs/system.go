package ecs

import (
	"errors"
	"path/filepath"
	"reflect"
	"runtime"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// System is a per-frame behavior unit. Update gets exclusive use of the
// World for the duration of the call and must not retain component pointers.
type System interface {
	Name() string
	Update(w *World, dt time.Duration) error
}

// SystemFunc is the signature of a function-backed system.
type SystemFunc func(w *World, dt time.Duration) error

type funcSystem struct {
	name string
	fn   SystemFunc
}

func (s funcSystem) Name() string { return s.name }

func (s funcSystem) Update(w *World, dt time.Duration) error { return s.fn(w, dt) }

// Func adapts fn to the System interface. An empty name is derived from the
// function symbol.
func Func(name string, fn SystemFunc) System {
	if name == "" {
		name = funcName(fn)
	}
	return funcSystem{name: name, fn: fn}
}

func funcName(fn SystemFunc) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "anonymous"
	}
	return filepath.Base(f.Name())
}

// FaultDecision tells the registry what to do after a system fails.
type FaultDecision uint8

const (
	FaultHalt     FaultDecision = iota // skip the rest of the frame
	FaultContinue                      // run the remaining systems
)

// FaultHandler is consulted once per failing system.
type FaultHandler func(err *SystemError) FaultDecision

// HaltOnFault stops the frame at the first failing system.
func HaltOnFault(*SystemError) FaultDecision { return FaultHalt }

// ContinueOnFault runs the remaining systems; all failures are returned joined.
func ContinueOnFault(*SystemError) FaultDecision { return FaultContinue }

type scheduleOp uint8

const (
	opAdd scheduleOp = iota
	opRemove
	opClear
)

type pendingChange struct {
	op     scheduleOp
	system System
	name   string
}

// SystemRegistry runs systems in insertion order. Changes requested while a
// frame is running are buffered and applied when the frame ends.
type SystemRegistry struct {
	systems []System
	pending []pendingChange
	running bool
	current string
	log     *zap.Logger
}

// NewSystemRegistry creates an empty registry.
func NewSystemRegistry(log *zap.Logger) *SystemRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &SystemRegistry{log: log}
}

// Add schedules s after every system already registered.
func (r *SystemRegistry) Add(s System) error {
	name := s.Name()
	if name == "" {
		return eris.Wrap(NewSystemError("", "system name must not be empty"), "add system")
	}
	if r.scheduled(name) {
		return eris.Wrap(&SystemError{System: name, Err: ErrDuplicateSystem}, "add system")
	}
	if r.running {
		r.pending = append(r.pending, pendingChange{op: opAdd, system: s})
		r.log.Debug("system add deferred", zap.String("system", name))
		return nil
	}
	r.systems = append(r.systems, s)
	r.log.Debug("system added", zap.String("system", name))
	return nil
}

// Remove unschedules the named system and reports whether it was scheduled.
func (r *SystemRegistry) Remove(name string) bool {
	if !r.scheduled(name) {
		return false
	}
	if r.running {
		r.pending = append(r.pending, pendingChange{op: opRemove, name: name})
		return true
	}
	r.remove(name)
	return true
}

// Clear drops every system.
func (r *SystemRegistry) Clear() {
	if r.running {
		r.pending = append(r.pending, pendingChange{op: opClear})
		return
	}
	r.systems = nil
}

// Names returns the system names in execution order.
func (r *SystemRegistry) Names() []string {
	names := make([]string, len(r.systems))
	for i, s := range r.systems {
		names[i] = s.Name()
	}
	return names
}

// Len returns the number of scheduled systems.
func (r *SystemRegistry) Len() int { return len(r.systems) }

// Current returns the name of the running system, or "" between frames.
func (r *SystemRegistry) Current() string { return r.current }

// UpdateAll runs one frame against w.
func (r *SystemRegistry) UpdateAll(w *World, dt time.Duration) error {
	if r.running {
		return eris.Wrap(NewSystemError(r.current, "frame update re-entered"), "update")
	}
	r.running = true
	defer r.endFrame()

	var errs []error
	for _, s := range r.systems {
		name := s.Name()
		r.current = name
		err := s.Update(w, dt)
		if err == nil {
			continue
		}
		sysErr := toSystemError(name, err)
		r.log.Warn("system failed", zap.String("system", name), zap.Error(err))
		errs = append(errs, eris.Wrapf(sysErr, "system %s generated an error", name))
		if w.onFault(sysErr) == FaultHalt {
			break
		}
	}
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

func (r *SystemRegistry) endFrame() {
	r.running = false
	r.current = ""
	pending := r.pending
	r.pending = nil
	for _, c := range pending {
		switch c.op {
		case opAdd:
			r.systems = append(r.systems, c.system)
			r.log.Debug("system added", zap.String("system", c.system.Name()))
		case opRemove:
			r.remove(c.name)
		case opClear:
			r.systems = nil
		}
	}
}

// scheduled reports whether name is registered or about to be.
func (r *SystemRegistry) scheduled(name string) bool {
	present := false
	for _, s := range r.systems {
		if s.Name() == name {
			present = true
		}
	}
	for _, c := range r.pending {
		switch c.op {
		case opAdd:
			if c.system.Name() == name {
				present = true
			}
		case opRemove:
			if c.name == name {
				present = false
			}
		case opClear:
			present = false
		}
	}
	return present
}

func (r *SystemRegistry) remove(name string) {
	for i, s := range r.systems {
		if s.Name() == name {
			r.systems = append(r.systems[:i:i], r.systems[i+1:]...)
			r.log.Debug("system removed", zap.String("system", name))
			return
		}
	}
}

func toSystemError(name string, err error) *SystemError {
	var se *SystemError
	if errors.As(err, &se) {
		if se.System != "" {
			return se
		}
		cp := *se
		cp.System = name
		return &cp
	}
	return &SystemError{System: name, Err: err}
}
