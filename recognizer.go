package gesture

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyName is returned when a recognizer is given an empty event prefix.
	ErrEmptyName = errors.New("empty recognizer name")
	// ErrInvalidThreshold is returned for a negative or NaN threshold.
	ErrInvalidThreshold = errors.New("threshold must be a non-negative number")
	// ErrInvalidPointLength is returned when fewer than one contact is required.
	ErrInvalidPointLength = errors.New("point length must be at least 1")
	// ErrDuplicateRecognizer is returned when a name is already registered on an engine.
	ErrDuplicateRecognizer = errors.New("recognizer name already registered")
)

// Options configures a recognizer. Zero values are not defaults; build
// Options with the With* functions over a recognizer's defaults.
type Options struct {
	Name        string  // event prefix, e.g. "pan"
	Threshold   float64 // minimum magnitude before the gesture arms
	PointLength int     // exact number of contacts required
}

// Option overrides one field of a recognizer's default Options.
type Option func(*Options)

// WithName sets the event prefix.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithThreshold sets the arming threshold.
func WithThreshold(threshold float64) Option {
	return func(o *Options) { o.Threshold = threshold }
}

// WithPointLength sets the required contact count.
func WithPointLength(n int) Option {
	return func(o *Options) { o.PointLength = n }
}

func buildOptions(defaults Options, opts []Option) (Options, error) {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return Options{}, fmt.Errorf("gesture: %s options: %w", defaults.Name, err)
	}
	return o, nil
}

func (o Options) validate() error {
	if o.Name == "" {
		return ErrEmptyName
	}
	if math.IsNaN(o.Threshold) || o.Threshold < 0 {
		return ErrInvalidThreshold
	}
	if o.PointLength < 1 {
		return ErrInvalidPointLength
	}
	return nil
}

// Context is the persistent state of one recognizer instance. Its options
// never change after construction; its state is advanced only by the
// recognizer's own frame callback.
type Context struct {
	opts     Options
	state    State
	disabled bool
}

func newContext(opts Options) *Context {
	return &Context{opts: opts}
}

// Name returns the event prefix.
func (c *Context) Name() string { return c.opts.Name }

// Threshold returns the arming threshold.
func (c *Context) Threshold() float64 { return c.opts.Threshold }

// PointLength returns the required contact count.
func (c *Context) PointLength() int { return c.opts.PointLength }

// Options returns a copy of the recognizer's configuration.
func (c *Context) Options() Options { return c.opts }

// State returns the state after the most recent frame.
func (c *Context) State() State { return c.state }

// Recognized reports whether a gesture is in progress.
func (c *Context) Recognized() bool { return c.state.Recognized() }

// Disabled reports whether emission is suppressed.
func (c *Context) Disabled() bool { return c.disabled }

// SetDisabled suppresses or restores emission. While disabled the recognizer
// still clears terminal states but does not evaluate frames.
func (c *Context) SetDisabled(disabled bool) { c.disabled = disabled }

// Recognizer is a gesture detector registered on an Engine.
type Recognizer interface {
	// Context returns the recognizer's persistent state.
	Context() *Context
	// EventNames lists every event name the recognizer can emit.
	EventNames() []string
}

// lifecycleNames returns name plus its four lifecycle-suffixed forms.
func lifecycleNames(name string) []string {
	return []string{name, name + "start", name + "move", name + "end", name + "cancel"}
}

// step runs the shared per-frame protocol: reset, disabled short-circuit,
// validity test, state advance. It reports the test result and whether the
// frame was evaluated at all.
func (c *Context) step(e *Engine, computed *Computed, test func() bool) (valid, evaluated bool) {
	c.state = Reset(c.state)
	if c.disabled {
		// A gesture in progress cannot outlive its contact group.
		if computed.Phase.Terminal() {
			c.state = StatePossible
		}
		return false, false
	}
	valid = test()
	prev := c.state
	c.state = Flow(valid, c.state, computed.Phase)
	e.traceTransition(c, prev, computed)
	return valid, true
}
