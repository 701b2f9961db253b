package gesture

import (
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func newPinchEngine(t *testing.T, opts ...Option) (*Engine, *Pinch, *[]string) {
	t.Helper()
	e := NewEngine()
	p, err := NewPinch(e, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return e, p, recordNames(e)
}

// spread starts a two-contact group 100 apart and widens it to 200.
func spread(e *Engine) {
	e.Replay([]Frame{
		touch(PhaseStart, ms(0), Pt(0, 0), Pt(100, 0)),
		touch(PhaseMove, ms(16), Pt(0, 0), Pt(200, 0)),
	})
}

func TestPinch_Out(t *testing.T) {
	e, p, names := newPinchEngine(t)
	spread(e)
	want := []string{"pinch", "pinchstart", "pinchout"}
	if !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
	if got := p.Context().State(); got != StateBegan {
		t.Errorf("state = %v, want began", got)
	}
}

func TestPinch_In(t *testing.T) {
	e, _, names := newPinchEngine(t)
	e.Replay(PinchFrames(Pt(100, 100), 200, 50, 4, 0, nil))
	want := []string{
		"pinch", "pinchstart", "pinchin",
		"pinch", "pinchmove", "pinchin",
		"pinch", "pinchend", "pinchin",
	}
	if !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
}

func TestPinch_SteadyFrameHasNoVariant(t *testing.T) {
	e, _, names := newPinchEngine(t)
	spread(e)
	*names = nil
	e.Feed(touch(PhaseMove, ms(32), Pt(0, 0), Pt(200, 0)))
	want := []string{"pinch", "pinchmove"}
	if !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
}

func TestPinch_ContactLiftCancels(t *testing.T) {
	e, p, names := newPinchEngine(t)
	spread(e)
	*names = nil
	e.Feed(touch(PhaseMove, ms(32), Pt(0, 0)))
	if want := []string{"pinchcancel"}; !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
	if got := p.Context().State(); got != StateCancelled {
		t.Errorf("state = %v, want cancelled", got)
	}
}

func TestPinch_EndWithOneContact(t *testing.T) {
	e, _, names := newPinchEngine(t)
	spread(e)
	*names = nil
	e.Feed(touch(PhaseEnd, ms(32), Pt(0, 0)))
	if want := []string{"pinch", "pinchend"}; !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
}

func TestPinch_NeverRecognized(t *testing.T) {
	e, _, names := newPinchEngine(t)
	e.Replay([]Frame{
		touch(PhaseStart, ms(0), Pt(0, 0), Pt(100, 0)),
		touch(PhaseMove, ms(16), Pt(10, 0), Pt(110, 0)),
		touch(PhaseEnd, ms(32), Pt(10, 0), Pt(110, 0)),
	})
	if len(*names) != 0 {
		t.Errorf("events = %v, want none", *names)
	}
}

func TestPinch_Threshold(t *testing.T) {
	e, _, names := newPinchEngine(t, WithThreshold(0.5))
	e.Replay([]Frame{
		touch(PhaseStart, ms(0), Pt(0, 0), Pt(100, 0)),
		touch(PhaseMove, ms(16), Pt(0, 0), Pt(140, 0)),
	})
	if len(*names) != 0 {
		t.Fatalf("scale 1.4 armed a 0.5 threshold: %v", *names)
	}
	e.Feed(touch(PhaseMove, ms(32), Pt(0, 0), Pt(160, 0)))
	if want := []string{"pinch", "pinchstart", "pinchout"}; !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
}

func TestPinch_RecognizedToleratesUnresolvedScale(t *testing.T) {
	e, p, names := newPinchEngine(t)
	spread(e)
	*names = nil
	e.Feed(Frame{Phase: PhaseMove, Samples: []Sample{
		{ID: 0, Pos: Pt(0, 0), Time: ms(32)},
		{ID: 1, Pos: vec.Vec2{X: math.NaN(), Y: 0}, Time: ms(32)},
	}})
	if want := []string{"pinch", "pinchmove"}; !slices.Equal(*names, want) {
		t.Errorf("events = %v, want %v", *names, want)
	}
	if !p.Context().Recognized() {
		t.Error("pinch should still be recognized")
	}
}

func TestPinch_EventCarriesScale(t *testing.T) {
	e, _, _ := newPinchEngine(t)
	var got Event
	e.On("pinchstart", func(ev Event) error { got = ev; return nil })
	spread(e)
	c := got.Computed
	if !approx(c.Scale, 2) || !approx(c.DeltaScale, 2) {
		t.Errorf("scale = %v delta = %v, want 2 2", c.Scale, c.DeltaScale)
	}
	if c.Center != Pt(100, 0) {
		t.Errorf("center = %v, want (100, 0)", c.Center)
	}
	if got.State != StateBegan || got.Recognizer != "pinch" {
		t.Errorf("event = %+v", got)
	}
}
