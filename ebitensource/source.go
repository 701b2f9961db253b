// Package ebitensource turns Ebitengine touch and mouse state into
// gesture frames. Call Source.Poll once per Update and feed the result to a
// gesture.Engine.
package ebitensource

import (
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"seehuhn.de/go/geom/vec"

	"github.com/phanxgames/gesture"
)

const (
	maxContacts = 10 // slot 0 = mouse, 1-9 = touch
	mouseSlot   = 0
)

// Source polls Ebitengine input. The zero value is not usable; call New.
type Source struct {
	// Mouse reports the left mouse button as contact 0.
	Mouse bool
	// Transform maps screen coordinates into the engine's space, e.g. a
	// camera's ScreenToWorld. Nil means identity.
	Transform func(x, y float64) (float64, float64)

	slots    touchSlots
	touchIDs []ebiten.TouchID
	tracker  tracker
	start    time.Time
	now      func() time.Time
}

// New returns a Source whose timestamps count from now.
func New() *Source {
	s := &Source{now: time.Now}
	s.start = s.now()
	return s
}

// Poll reads the current input state and returns the frame it produces.
// It returns false when nothing changed since the previous poll.
func (s *Source) Poll() (gesture.Frame, bool) {
	return s.tracker.step(s.read(), s.now().Sub(s.start))
}

// Cancel makes the next Poll emit a CANCEL frame for the current contact
// group, e.g. when the window loses focus. Contacts still down afterwards
// are ignored until every one of them lifts.
func (s *Source) Cancel() {
	s.tracker.cancel()
}

// read collects the contacts currently down, ordered by slot.
func (s *Source) read() []contact {
	var out []contact
	if s.Mouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		out = append(out, s.contact(mouseSlot, mx, my))
	}

	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])
	var active [maxContacts]bool
	for _, tid := range s.touchIDs {
		slot := s.slots.slot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		out = append(out, s.contact(slot, tx, ty))
	}
	s.slots.release(active)

	slices.SortFunc(out, func(a, b contact) int { return a.slot - b.slot })
	return out
}

func (s *Source) contact(slot, x, y int) contact {
	fx, fy := float64(x), float64(y)
	if s.Transform != nil {
		fx, fy = s.Transform(fx, fy)
	}
	return contact{slot: slot, pos: vec.Vec2{X: fx, Y: fy}}
}

// --- Touch slots ---

// touchSlots maps ebiten.TouchID values to stable contact slots (1-9) so a
// finger keeps its contact ID while it stays down.
type touchSlots struct {
	ids  [maxContacts]ebiten.TouchID
	used [maxContacts]bool
}

// slot returns the existing slot for tid or allocates the lowest free one.
// Returns -1 if full.
func (t *touchSlots) slot(tid ebiten.TouchID) int {
	for i := 1; i < maxContacts; i++ {
		if t.used[i] && t.ids[i] == tid {
			return i
		}
	}
	for i := 1; i < maxContacts; i++ {
		if !t.used[i] {
			t.used[i] = true
			t.ids[i] = tid
			return i
		}
	}
	return -1
}

// release frees every touch slot not marked active this poll.
func (t *touchSlots) release(active [maxContacts]bool) {
	for i := 1; i < maxContacts; i++ {
		if t.used[i] && !active[i] {
			t.used[i] = false
			t.ids[i] = 0
		}
	}
}

// --- Phase derivation ---

type contact struct {
	slot int
	pos  vec.Vec2
}

// tracker derives frame phases from successive contact snapshots.
type tracker struct {
	down          bool
	last          []gesture.Sample
	pendingCancel bool
	suppressed    bool // after a cancel, until every contact lifts
}

func (t *tracker) cancel() {
	if t.down {
		t.pendingCancel = true
	}
}

// step turns the contacts down now into a frame: none to some is START,
// some to some is MOVE, some to none is END at the last known positions.
// Snapshots identical to the previous frame produce nothing.
func (t *tracker) step(contacts []contact, now time.Duration) (gesture.Frame, bool) {
	samples := make([]gesture.Sample, len(contacts))
	for i, c := range contacts {
		samples[i] = gesture.Sample{ID: c.slot, Pos: c.pos, Time: now}
	}

	if t.pendingCancel {
		t.pendingCancel = false
		t.down = false
		t.suppressed = len(samples) > 0
		if len(samples) == 0 {
			samples = restamp(t.last, now)
		}
		t.last = nil
		return gesture.Frame{Phase: gesture.PhaseCancel, Samples: samples}, true
	}
	if t.suppressed {
		if len(samples) == 0 {
			t.suppressed = false
		}
		return gesture.Frame{}, false
	}

	switch {
	case !t.down && len(samples) == 0:
		return gesture.Frame{}, false
	case !t.down:
		t.down = true
		t.last = samples
		return gesture.Frame{Phase: gesture.PhaseStart, Samples: samples}, true
	case len(samples) == 0:
		t.down = false
		last := restamp(t.last, now)
		t.last = nil
		return gesture.Frame{Phase: gesture.PhaseEnd, Samples: last}, true
	case samePositions(samples, t.last):
		return gesture.Frame{}, false
	}
	t.last = samples
	return gesture.Frame{Phase: gesture.PhaseMove, Samples: samples}, true
}

func restamp(samples []gesture.Sample, now time.Duration) []gesture.Sample {
	out := slices.Clone(samples)
	for i := range out {
		out[i].Time = now
	}
	return out
}

func samePositions(a, b []gesture.Sample) bool {
	return slices.EqualFunc(a, b, func(x, y gesture.Sample) bool {
		return x.ID == y.ID && x.Pos == y.Pos
	})
}
