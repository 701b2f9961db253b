package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture events.
// Subscribe to this in your ECS systems to receive every emitted event.
var GestureEventType = events.NewEventType[gesture.Event]()

// RecognizerState is the component kept on one entity per recognizer.
type RecognizerState struct {
	Recognizer string
	State      gesture.State
	Last       gesture.Event
}

// GestureState is the component type holding a RecognizerState.
var GestureState = donburi.NewComponentType[RecognizerState]()

// DonburiStore publishes gesture events into a Donburi world and mirrors
// each recognizer's state onto an entity.
type DonburiStore struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Events are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[string]donburi.Entity)}
}

// EmitEvent implements gesture.EventStore.
func (s *DonburiStore) EmitEvent(event gesture.Event) {
	entry := s.entry(event.Recognizer)
	GestureState.SetValue(entry, RecognizerState{
		Recognizer: event.Recognizer,
		State:      event.State,
		Last:       event,
	})
	GestureEventType.Publish(s.world, event)
}

// Entity returns the entity carrying recognizer's state, if it has emitted.
func (s *DonburiStore) Entity(recognizer string) (donburi.Entity, bool) {
	e, ok := s.entities[recognizer]
	if !ok || !s.world.Valid(e) {
		return donburi.Null, false
	}
	return e, true
}

func (s *DonburiStore) entry(recognizer string) *donburi.Entry {
	e, ok := s.Entity(recognizer)
	if !ok {
		e = s.world.Create(GestureState)
		s.entities[recognizer] = e
	}
	return s.world.Entry(e)
}
