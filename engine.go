package gesture

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
)

var (
	// ErrListener is wrapped by every ListenerError.
	ErrListener = errors.New("listener failed")
	// ErrReentrantFeed is reported when Feed is called while a frame is
	// still being processed, e.g. from a listener. The nested frame is dropped.
	ErrReentrantFeed = errors.New("gesture: Feed called during dispatch")
)

// Event is delivered to listeners and event stores.
type Event struct {
	Name       string   // full event name, e.g. "panstart"
	Recognizer string   // emitting recognizer's name, e.g. "pan"
	State      State    // recognizer state after the frame
	Frame      uint64   // sequence number of the frame, starting at 1
	Computed   Computed // snapshot of the frame's computed record
}

// Listener receives events. A returned error, like a panic, is reported to
// the engine's error handler and does not stop other listeners.
type Listener func(Event) error

// EventStore is the interface for optional bridges (ECS worlds, tracers).
// Stores receive every event after its listeners have run.
type EventStore interface {
	EmitEvent(event Event)
}

// ListenerError reports a listener or event store that returned an error
// or panicked.
type ListenerError struct {
	Event string
	Err   error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("gesture: listener for %q: %v", e.Event, e.Err)
}

// Unwrap returns ErrListener and the listener's own error.
func (e *ListenerError) Unwrap() []error {
	return []error{ErrListener, e.Err}
}

// --- Handler registry ---

type handler struct {
	id uint32
	fn Listener
}

type handlerRegistry struct {
	byName map[string][]handler
	any    []handler
	nextID uint32
}

// CallbackHandle allows removing a registered listener.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	name string
	any  bool
}

// Remove unregisters the listener so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.any {
		h.reg.any = removeHandler(h.reg.any, h.id)
		return
	}
	hs := removeHandler(h.reg.byName[h.name], h.id)
	if len(hs) == 0 {
		delete(h.reg.byName, h.name)
		return
	}
	h.reg.byName[h.name] = hs
}

func removeHandler(s []handler, id uint32) []handler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Compute pipeline ---

// registration is one recognizer's ordered computations and frame callback.
type registration struct {
	computations []Computation
	fn           func(*Computed)
}

// run builds a fresh Computed record for the frame and hands it to fn.
func (r *registration) run(in *Input) {
	c := Computed{
		Phase:       in.Frame.Phase,
		PointLength: len(in.Frame.Samples),
		Samples:     in.Frame.Samples,
	}
	for _, comp := range r.computations {
		comp.Compute(in, &c)
	}
	r.fn(&c)
}

// --- Engine ---

// Engine is the host that recognizers register with. It owns the input
// history, runs every registration's compute pipeline once per frame, and
// fans emitted events out to listeners and stores.
//
// An Engine is not safe for concurrent use; feed frames from one goroutine.
type Engine struct {
	registrations []*registration
	recognizers   []Recognizer
	byName        map[string]Recognizer

	handlers handlerRegistry
	stores   []EventStore
	history  contactHistory
	frame    uint64
	feeding  bool

	onError  func(error)
	debug    bool
	debugOut io.Writer
}

// NewEngine creates an engine with no recognizers.
func NewEngine() *Engine {
	return &Engine{
		byName:   make(map[string]Recognizer),
		handlers: handlerRegistry{byName: make(map[string][]handler)},
		onError:  defaultErrorHandler,
		debugOut: os.Stderr,
	}
}

func defaultErrorHandler(err error) {
	log.Printf("gesture: %v", err)
}

// SetErrorHandler replaces the handler that receives listener failures.
// A nil fn restores the default, which logs the error.
func (e *Engine) SetErrorHandler(fn func(error)) {
	if fn == nil {
		fn = defaultErrorHandler
	}
	e.onError = fn
}

// AddEventStore attaches a bridge that receives every emitted event.
func (e *Engine) AddEventStore(store EventStore) {
	e.stores = append(e.stores, store)
}

// Compute registers an ordered list of computations and a callback. Each
// registration gets its own instance of every computation, which keeps its
// state across frames. Every frame runs them in order into a fresh record and
// fn receives it.
func (e *Engine) Compute(factories []ComputeFactory, fn func(*Computed)) {
	r := &registration{fn: fn}
	for _, f := range factories {
		r.computations = append(r.computations, f())
	}
	e.registrations = append(e.registrations, r)
}

// register records a recognizer's capabilities. Names are unique per engine.
func (e *Engine) register(r Recognizer) {
	name := r.Context().Name()
	e.recognizers = append(e.recognizers, r)
	e.byName[name] = r
}

func (e *Engine) checkName(name string) error {
	if _, ok := e.byName[name]; ok {
		return fmt.Errorf("gesture: recognizer %q: %w", name, ErrDuplicateRecognizer)
	}
	return nil
}

// Recognizers returns registered recognizers in registration order.
// The returned slice MUST NOT be mutated.
func (e *Engine) Recognizers() []Recognizer {
	return e.recognizers
}

// Recognizer looks up a registered recognizer by name.
func (e *Engine) Recognizer(name string) (Recognizer, bool) {
	r, ok := e.byName[name]
	return r, ok
}

// EventNames returns every event name the registered recognizers can emit.
func (e *Engine) EventNames() []string {
	var names []string
	for _, r := range e.recognizers {
		names = append(names, r.EventNames()...)
	}
	return names
}

// On registers a listener for one event name. Listeners for the same name
// run in registration order.
func (e *Engine) On(name string, fn Listener) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.byName[name] = append(e.handlers.byName[name], handler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, name: name}
}

// OnAny registers a listener for every event. It runs after the listeners
// registered for the specific name.
func (e *Engine) OnAny(fn Listener) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.any = append(e.handlers.any, handler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, any: true}
}

// Feed processes one frame to completion: every registration computes and
// runs its callback, and every emitted event reaches all listeners before
// Feed returns. Calling Feed from a listener or store reports
// ErrReentrantFeed to the error handler and drops the nested frame.
func (e *Engine) Feed(f Frame) {
	if e.feeding {
		e.onError(ErrReentrantFeed)
		return
	}
	e.feeding = true
	defer func() { e.feeding = false }()

	e.frame++
	in := e.history.begin(f)
	for _, r := range e.registrations {
		r.run(in)
	}
	e.history.end(f)
}

// Replay feeds frames in order.
func (e *Engine) Replay(frames []Frame) {
	for _, f := range frames {
		e.Feed(f)
	}
}

// Emit publishes an event named name for the recognizer owning ctx.
func (e *Engine) Emit(name string, c *Computed, ctx *Context) {
	ev := Event{
		Name:       name,
		Recognizer: ctx.Name(),
		State:      ctx.State(),
		Frame:      e.frame,
		Computed:   *c,
	}
	// Clone so listeners may remove themselves mid-dispatch.
	for _, h := range slices.Clone(e.handlers.byName[name]) {
		e.deliver(ev, h.fn)
	}
	for _, h := range slices.Clone(e.handlers.any) {
		e.deliver(ev, h.fn)
	}
	for _, s := range e.stores {
		e.deliver(ev, func(ev Event) error {
			s.EmitEvent(ev)
			return nil
		})
	}
}

// deliver runs one consumer of ev. A returned error or panic is reported to
// the error handler and never reaches the caller.
func (e *Engine) deliver(ev Event, fn Listener) {
	defer func() {
		if r := recover(); r != nil {
			e.onError(&ListenerError{Event: ev.Name, Err: fmt.Errorf("panic: %v", r)})
		}
	}()
	if err := fn(ev); err != nil {
		e.onError(&ListenerError{Event: ev.Name, Err: err})
	}
}

// dispatch emits the events for one evaluated frame: the bare name and the
// variant while the gesture is live, and the lifecycle name whenever the
// state has one. Ended and cancelled gestures therefore always announce
// themselves, even on the frame that stopped matching.
func (e *Engine) dispatch(ctx *Context, c *Computed, valid bool, variant string) {
	live := valid && ctx.state != StatePossible
	if live {
		e.Emit(ctx.Name(), c, ctx)
	}
	if s := ctx.state.StatusName(); s != "" {
		e.Emit(ctx.Name()+s, c, ctx)
	}
	if live && variant != "" {
		e.Emit(ctx.Name()+variant, c, ctx)
	}
}
