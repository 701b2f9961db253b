// Package gesture recognizes multi-touch gestures (pan, pinch, rotate) from
// a stream of normalized pointer frames and publishes them as named events.
//
// # Quick start
//
// Create an [Engine], register recognizers on it, listen for events, and
// feed it one [Frame] per input tick:
//
//	e := gesture.NewEngine()
//	if _, err := gesture.NewPan(e); err != nil { ... }
//	if _, err := gesture.NewPinch(e, gesture.WithThreshold(0.05)); err != nil { ... }
//
//	e.On("panmove", func(ev gesture.Event) error {
//		fmt.Println(ev.Computed.DeltaX, ev.Computed.DeltaY)
//		return nil
//	})
//
//	e.Feed(gesture.Frame{Phase: gesture.PhaseStart, Samples: samples})
//
// Feeding is synchronous: every recognizer evaluates the frame and every
// listener has run before [Engine.Feed] returns.
//
// # Pipeline
//
// Each recognizer declares an ordered list of computations ([ComputeDistance],
// [ComputeVelocityAndDirection], [ComputeVector], [ComputeScale], ...). For
// every frame the engine runs them in order into a fresh [Computed] record;
// fields a recognizer did not ask for are never set. The recognizer then tests
// the record, advances its [State] with [Flow], and emits events.
//
// # Event names
//
// A recognizer named "pan" emits:
//
//	pan                       every live frame
//	panstart panmove          first and following live frames
//	panend   pancancel        once, when the gesture finishes or stops matching
//	panright panupleft ...    compass direction on live, non-final frames
//
// Pinch adds "pinchin"/"pinchout"; rotate has lifecycle events only.
//
// # Adapters
//
// Package ebitensource turns [Ebitengine] touch and mouse state into frames.
// Package ecs publishes events into a [Donburi] world; package oteltrace turns
// them into OpenTelemetry spans. [DragFrames], [PinchFrames] and [LoadScript]
// build synthetic input for tests and replays.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package gesture
