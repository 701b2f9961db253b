package ecs

import (
	"testing"

	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_ImplementsEventStore(t *testing.T) {
	world := donburi.NewWorld()
	var store gesture.EventStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []gesture.Event
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		received = append(received, e)
	})

	store.EmitEvent(gesture.Event{Name: "panstart", Recognizer: "pan", State: gesture.StateBegan, Frame: 2})
	store.EmitEvent(gesture.Event{Name: "pinchout", Recognizer: "pinch", State: gesture.StateChanged, Frame: 3})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e0 := received[0]; e0.Name != "panstart" || e0.Frame != 2 {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Name != "pinchout" || e1.State != gesture.StateChanged {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_TracksRecognizerState(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	e := gesture.NewEngine()
	if _, err := gesture.NewPan(e); err != nil {
		t.Fatal(err)
	}
	e.AddEventStore(store)
	e.Replay(gesture.DragFrames(gesture.Pt(0, 0), gesture.Pt(60, 0), 4, 0, nil))

	ent, ok := store.Entity("pan")
	if !ok {
		t.Fatal("no entity for pan")
	}
	st := GestureState.Get(world.Entry(ent))
	if st.Recognizer != "pan" || st.State != gesture.StateEnded || st.Last.Name != "panend" {
		t.Errorf("state component = %+v", st)
	}
	if _, ok := store.Entity("pinch"); ok {
		t.Error("pinch never emitted but has an entity")
	}
	if got := world.Len(); got != 1 {
		t.Errorf("world has %d entities, want 1", got)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e gesture.Event) {
		count2++
	})

	store.EmitEvent(gesture.Event{Name: "rotate", Recognizer: "rotate"})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
