package gesture

import (
	"errors"
	"slices"
	"testing"
)

// recordNames collects every emitted event name.
func recordNames(e *Engine) *[]string {
	var names []string
	e.OnAny(func(ev Event) error {
		names = append(names, ev.Name)
		return nil
	})
	return &names
}

type memStore struct {
	events []Event
}

func (s *memStore) EmitEvent(ev Event) {
	s.events = append(s.events, ev)
}

func TestEngine_ComputeRunsOncePerFrameInOrder(t *testing.T) {
	e := NewEngine()
	var order []string
	step := func(name string) ComputeFactory {
		return func() Computation {
			return ComputationFunc(func(in *Input, c *Computed) { order = append(order, name) })
		}
	}
	var calls int
	e.Compute([]ComputeFactory{step("a"), step("b"), step("c")}, func(c *Computed) { calls++ })

	e.Feed(touch(PhaseStart, ms(0), Pt(0, 0)))
	e.Feed(touch(PhaseMove, ms(16), Pt(1, 0)))

	if calls != 2 {
		t.Errorf("callback ran %d times, want 2", calls)
	}
	want := []string{"a", "b", "c", "a", "b", "c"}
	if !slices.Equal(order, want) {
		t.Errorf("computation order = %v, want %v", order, want)
	}
}

func TestEngine_ComputedIsFreshEachFrame(t *testing.T) {
	e := NewEngine()
	var got []Computed
	e.Compute([]ComputeFactory{ComputeVector, ComputeScale}, func(c *Computed) { got = append(got, *c) })

	e.Feed(touch(PhaseStart, ms(0), Pt(0, 0), Pt(100, 0)))
	e.Feed(touch(PhaseMove, ms(16), Pt(0, 0)))

	if !got[0].Has(FieldScale) {
		t.Fatal("two-contact frame should have scale")
	}
	if got[1].Has(FieldScale) || got[1].Scale != 0 {
		t.Errorf("scale leaked into single-contact frame: %v", got[1].Scale)
	}
}

func TestEngine_ComputationsArePerRegistration(t *testing.T) {
	// Two pinch recognizers with different names must each see their own
	// vector history.
	e := NewEngine()
	var a, b []float64
	e.Compute([]ComputeFactory{ComputeVector, ComputeScale}, func(c *Computed) { a = append(a, c.DeltaScale) })
	e.Compute([]ComputeFactory{ComputeVector, ComputeScale}, func(c *Computed) { b = append(b, c.DeltaScale) })

	e.Replay([]Frame{
		touch(PhaseStart, ms(0), Pt(0, 0), Pt(100, 0)),
		touch(PhaseMove, ms(16), Pt(0, 0), Pt(200, 0)),
	})
	if !slices.Equal(a, []float64{1, 2}) || !slices.Equal(b, []float64{1, 2}) {
		t.Errorf("delta scales a=%v b=%v, want [1 2] each", a, b)
	}
}

func TestEngine_ListenerOrder(t *testing.T) {
	e := NewEngine()
	ctx := newContext(DefaultPanOptions())
	var order []string
	e.On("panstart", func(Event) error { order = append(order, "first"); return nil })
	e.On("panstart", func(Event) error { order = append(order, "second"); return nil })
	e.OnAny(func(Event) error { order = append(order, "any"); return nil })
	e.On("panmove", func(Event) error { order = append(order, "other"); return nil })

	e.Emit("panstart", &Computed{}, ctx)

	want := []string{"first", "second", "any"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestEngine_CallbackHandleRemove(t *testing.T) {
	e := NewEngine()
	ctx := newContext(DefaultPanOptions())
	var count, anyCount int
	h := e.On("pan", func(Event) error { count++; return nil })
	ah := e.OnAny(func(Event) error { anyCount++; return nil })

	e.Emit("pan", &Computed{}, ctx)
	h.Remove()
	ah.Remove()
	e.Emit("pan", &Computed{}, ctx)

	if count != 1 || anyCount != 1 {
		t.Errorf("count=%d anyCount=%d, want 1 1", count, anyCount)
	}
	// Removing twice or removing a zero handle is harmless.
	h.Remove()
	CallbackHandle{}.Remove()
}

func TestEngine_ListenerRemovesItself(t *testing.T) {
	e := NewEngine()
	ctx := newContext(DefaultPanOptions())
	var h CallbackHandle
	var first, second int
	h = e.On("pan", func(Event) error { first++; h.Remove(); return nil })
	e.On("pan", func(Event) error { second++; return nil })

	e.Emit("pan", &Computed{}, ctx)
	e.Emit("pan", &Computed{}, ctx)

	if first != 1 || second != 2 {
		t.Errorf("first=%d second=%d, want 1 2", first, second)
	}
}

func TestEngine_ListenerFailureIsolated(t *testing.T) {
	e := NewEngine()
	var errs []error
	e.SetErrorHandler(func(err error) { errs = append(errs, err) })
	if _, err := NewPan(e); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPinch(e); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	e.On("panstart", func(Event) error { panic("listener exploded") })
	e.On("panstart", func(Event) error { return boom })
	var reached bool
	e.On("panstart", func(Event) error { reached = true; return nil })
	names := recordNames(e)

	e.Replay(DragFrames(Pt(0, 0), Pt(60, 0), 4, 0, nil))

	if !reached {
		t.Error("listener after failing ones did not run")
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 reported errors, got %d: %v", len(errs), errs)
	}
	for _, err := range errs {
		if !errors.Is(err, ErrListener) {
			t.Errorf("error %v does not wrap ErrListener", err)
		}
		var le *ListenerError
		if !errors.As(err, &le) || le.Event != "panstart" {
			t.Errorf("error %v is not a panstart ListenerError", err)
		}
	}
	if !errors.Is(errs[1], boom) {
		t.Errorf("returned error not preserved: %v", errs[1])
	}
	// The frame still completed: the gesture ended normally.
	if !slices.Contains(*names, "panend") {
		t.Errorf("events = %v, want panend", *names)
	}
}

func TestEngine_EventStores(t *testing.T) {
	e := NewEngine()
	if _, err := NewPan(e); err != nil {
		t.Fatal(err)
	}
	s1, s2 := &memStore{}, &memStore{}
	e.AddEventStore(s1)
	e.AddEventStore(s2)
	names := recordNames(e)

	e.Replay(DragFrames(Pt(0, 0), Pt(60, 0), 4, 0, nil))

	if len(s1.events) != len(*names) || len(s2.events) != len(*names) {
		t.Fatalf("stores got %d/%d events, listeners got %d", len(s1.events), len(s2.events), len(*names))
	}
	ev := s1.events[0]
	if ev.Recognizer != "pan" || ev.Name != "pan" || ev.State != StateBegan || ev.Frame != 2 {
		t.Errorf("first stored event = %+v", ev)
	}
}

func TestEngine_Registry(t *testing.T) {
	e := NewEngine()
	pan, err := NewPan(e)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewPinch(e); err != nil {
		t.Fatal(err)
	}

	r, ok := e.Recognizer("pan")
	if !ok || r != Recognizer(pan) {
		t.Error("Recognizer(\"pan\") did not return the pan recognizer")
	}
	if _, ok := e.Recognizer("swipe"); ok {
		t.Error("unknown recognizer should not be found")
	}
	if got := len(e.Recognizers()); got != 2 {
		t.Errorf("len(Recognizers()) = %d, want 2", got)
	}

	names := e.EventNames()
	for _, want := range []string{"pan", "panstart", "pancancel", "pandownleft", "pinch", "pinchin", "pinchout", "pinchend"} {
		if !slices.Contains(names, want) {
			t.Errorf("EventNames() missing %q", want)
		}
	}
	if got := len(names); got != 13+7 {
		t.Errorf("len(EventNames()) = %d, want 20", got)
	}
}

func TestEngine_DuplicateName(t *testing.T) {
	e := NewEngine()
	if _, err := NewPan(e); err != nil {
		t.Fatal(err)
	}
	_, err := NewPinch(e, WithName("pan"))
	if !errors.Is(err, ErrDuplicateRecognizer) {
		t.Errorf("err = %v, want ErrDuplicateRecognizer", err)
	}
	if got := len(e.Recognizers()); got != 1 {
		t.Errorf("failed constructor registered a recognizer: %d", got)
	}
	if got := len(e.registrations); got != 1 {
		t.Errorf("failed constructor registered a pipeline: %d", got)
	}
}

func TestEngine_DefaultErrorHandler(t *testing.T) {
	e := NewEngine()
	e.SetErrorHandler(nil)
	if e.onError == nil {
		t.Fatal("nil handler should restore the default")
	}
}

type panicStore struct{}

func (panicStore) EmitEvent(Event) { panic("store down") }

func TestEngine_StoreFailureIsolated(t *testing.T) {
	e := NewEngine()
	var errs []error
	e.SetErrorHandler(func(err error) { errs = append(errs, err) })
	if _, err := NewPan(e); err != nil {
		t.Fatal(err)
	}
	second, err := NewPan(e, WithName("pan2"))
	if err != nil {
		t.Fatal(err)
	}
	e.AddEventStore(panicStore{})
	after := &memStore{}
	e.AddEventStore(after)
	names := recordNames(e)

	e.Replay([]Frame{
		touch(PhaseStart, ms(0), Pt(0, 0)),
		touch(PhaseMove, ms(16), Pt(20, 0)),
		touch(PhaseMove, ms(32), Pt(40, 0)),
	})

	want := []string{
		"pan", "panstart", "panright", "pan2", "pan2start", "pan2right",
		"pan", "panmove", "panright", "pan2", "pan2move", "pan2right",
	}
	if !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
	if got := second.Context().State(); got != StateChanged {
		t.Errorf("pan2 state = %v, want changed", got)
	}
	if len(after.events) != len(want) {
		t.Errorf("store after the failing one got %d events, want %d", len(after.events), len(want))
	}
	if len(errs) != len(want) {
		t.Fatalf("reported %d errors, want %d", len(errs), len(want))
	}
	var le *ListenerError
	if !errors.Is(errs[0], ErrListener) || !errors.As(errs[0], &le) || le.Event != "pan" {
		t.Errorf("first error = %v, want a pan ListenerError", errs[0])
	}
}

func TestEngine_ReentrantFeedDropped(t *testing.T) {
	e := NewEngine()
	var errs []error
	e.SetErrorHandler(func(err error) { errs = append(errs, err) })
	if _, err := NewPan(e); err != nil {
		t.Fatal(err)
	}
	var frames []uint64
	e.Compute(nil, func(c *Computed) { frames = append(frames, e.frame) })
	e.On("panstart", func(Event) error {
		e.Feed(touch(PhaseMove, ms(100), Pt(500, 500)))
		return nil
	})
	names := recordNames(e)

	e.Replay([]Frame{
		touch(PhaseStart, ms(0), Pt(0, 0)),
		touch(PhaseMove, ms(16), Pt(20, 0)),
		touch(PhaseMove, ms(32), Pt(40, 0)),
	})

	if len(errs) != 1 || !errors.Is(errs[0], ErrReentrantFeed) {
		t.Fatalf("errors = %v, want one ErrReentrantFeed", errs)
	}
	if !slices.Equal(frames, []uint64{1, 2, 3}) {
		t.Errorf("frames processed = %v, want [1 2 3]", frames)
	}
	// The nested frame did not disturb the history: the next move is a
	// 20 unit step to the right.
	want := []string{"pan", "panstart", "panright", "pan", "panmove", "panright"}
	if !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
}
