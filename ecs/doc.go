// Package ecs provides ECS adapters for gesture events.
//
// The primary adapter is [NewDonburiStore], which bridges recognized
// gestures (pan, pinch, rotate) into a [Donburi] world as typed events.
// Subscribe to [GestureEventType] in your ECS systems to receive them, or
// query [GestureState] for the latest state of each recognizer.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.AddEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
