package gesture

import "math"

// Pinch recognizes contacts moving apart or together. It emits "pinch",
// "pinchstart|move|end|cancel", and "pinchout" when the contacts spread
// since the previous frame or "pinchin" when they closed.
type Pinch struct {
	engine *Engine
	ctx    *Context
}

// DefaultPinchOptions are the options NewPinch starts from. Threshold is the
// minimum |scale-1| before the gesture arms.
func DefaultPinchOptions() Options {
	return Options{Name: "pinch", Threshold: 0, PointLength: 2}
}

// NewPinch creates a pinch recognizer and registers it with e.
func NewPinch(e *Engine, opts ...Option) (*Pinch, error) {
	o, err := buildOptions(DefaultPinchOptions(), opts)
	if err != nil {
		return nil, err
	}
	if err := e.checkName(o.Name); err != nil {
		return nil, err
	}
	p := &Pinch{engine: e, ctx: newContext(o)}
	// Scale reads the vector fields, so order matters.
	e.Compute([]ComputeFactory{ComputeVector, ComputeScale}, p.handle)
	e.register(p)
	return p, nil
}

// Context returns the recognizer's persistent state.
func (p *Pinch) Context() *Context { return p.ctx }

// EventNames lists the lifecycle and in/out events.
func (p *Pinch) EventNames() []string {
	name := p.ctx.Name()
	return append(lifecycleNames(name), name+"in", name+"out")
}

func (p *Pinch) handle(c *Computed) {
	valid, ok := p.ctx.step(p.engine, c, func() bool { return p.test(c) })
	if !ok {
		return
	}
	var variant string
	if c.Has(FieldDeltaScale) && c.DeltaScale != 1 {
		if c.DeltaScale > 1 {
			variant = "out"
		} else {
			variant = "in"
		}
	}
	p.engine.dispatch(p.ctx, c, valid, variant)
}

// test is the validity predicate. A recognized pinch stays valid on a frame
// whose scale cannot be resolved, as long as the contact count matches.
func (p *Pinch) test(c *Computed) bool {
	recognized := p.ctx.Recognized()
	if recognized && c.Phase.Terminal() {
		return true
	}
	if c.PointLength != p.ctx.PointLength() {
		return false
	}
	if recognized {
		return true
	}
	return c.Has(FieldScale|FieldDeltaScale) && math.Abs(c.Scale-1) > p.ctx.Threshold()
}
