package gesture

// Pan recognizes a contact (or group of contacts) dragged past a distance
// threshold. It emits "pan", "panstart|move|end|cancel" and, while the
// gesture is not ending, the compass direction ("panright", "panupleft", ...).
type Pan struct {
	engine *Engine
	ctx    *Context
}

// DefaultPanOptions are the options NewPan starts from.
func DefaultPanOptions() Options {
	return Options{Name: "pan", Threshold: 10, PointLength: 1}
}

// NewPan creates a pan recognizer and registers it with e.
func NewPan(e *Engine, opts ...Option) (*Pan, error) {
	o, err := buildOptions(DefaultPanOptions(), opts)
	if err != nil {
		return nil, err
	}
	if err := e.checkName(o.Name); err != nil {
		return nil, err
	}
	p := &Pan{engine: e, ctx: newContext(o)}
	e.Compute([]ComputeFactory{ComputeVelocityAndDirection, ComputeDistance, ComputeDeltaXY}, p.handle)
	e.register(p)
	return p, nil
}

// Context returns the recognizer's persistent state.
func (p *Pan) Context() *Context { return p.ctx }

// EventNames lists the lifecycle and direction events.
func (p *Pan) EventNames() []string {
	names := lifecycleNames(p.ctx.Name())
	for _, d := range Directions() {
		names = append(names, p.ctx.Name()+d.String())
	}
	return names
}

func (p *Pan) handle(c *Computed) {
	valid, ok := p.ctx.step(p.engine, c, func() bool { return p.test(c) })
	if !ok {
		return
	}
	var variant string
	if !c.Phase.Terminal() && c.Has(FieldDirection) {
		variant = c.Direction.String()
	}
	p.engine.dispatch(p.ctx, c, valid, variant)
}

// test is the validity predicate, evaluated against the state before Flow.
func (p *Pan) test(c *Computed) bool {
	recognized := p.ctx.Recognized()
	if recognized && c.Phase.Terminal() {
		return true
	}
	armed := recognized || (c.Has(FieldDistance) && c.Distance >= p.ctx.Threshold())
	return armed && c.PointLength == p.ctx.PointLength() && c.Has(FieldDirection)
}
