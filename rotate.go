package gesture

import "math"

// Rotate recognizes two contacts turning around each other. It emits
// "rotate" and "rotatestart|move|end|cancel"; Computed.Angle carries the
// rotation in degrees since the contacts paired.
type Rotate struct {
	engine *Engine
	ctx    *Context
}

// DefaultRotateOptions are the options NewRotate starts from. Threshold is in
// degrees.
func DefaultRotateOptions() Options {
	return Options{Name: "rotate", Threshold: 0, PointLength: 2}
}

// NewRotate creates a rotate recognizer and registers it with e.
func NewRotate(e *Engine, opts ...Option) (*Rotate, error) {
	o, err := buildOptions(DefaultRotateOptions(), opts)
	if err != nil {
		return nil, err
	}
	if err := e.checkName(o.Name); err != nil {
		return nil, err
	}
	r := &Rotate{engine: e, ctx: newContext(o)}
	e.Compute([]ComputeFactory{ComputeVector, ComputeAngle}, r.handle)
	e.register(r)
	return r, nil
}

// Context returns the recognizer's persistent state.
func (r *Rotate) Context() *Context { return r.ctx }

// EventNames lists the lifecycle events.
func (r *Rotate) EventNames() []string {
	return lifecycleNames(r.ctx.Name())
}

func (r *Rotate) handle(c *Computed) {
	valid, ok := r.ctx.step(r.engine, c, func() bool { return r.test(c) })
	if !ok {
		return
	}
	r.engine.dispatch(r.ctx, c, valid, "")
}

func (r *Rotate) test(c *Computed) bool {
	recognized := r.ctx.Recognized()
	if recognized && c.Phase.Terminal() {
		return true
	}
	if c.PointLength != r.ctx.PointLength() {
		return false
	}
	if recognized {
		return true
	}
	return c.Has(FieldAngle) && math.Abs(c.Angle) > r.ctx.Threshold()
}
