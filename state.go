package gesture

import "fmt"

// State is a recognizer's position in its recognition lifecycle.
type State uint8

const (
	StatePossible  State = iota // nothing recognized yet
	StateBegan                  // first valid frame of a gesture
	StateChanged                // gesture continues
	StateEnded                  // gesture finished normally
	StateCancelled              // gesture stopped matching or was aborted
)

var stateNames = [...]string{"possible", "began", "changed", "ended", "cancelled"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Recognized reports whether a gesture is in progress (began or changed).
func (s State) Recognized() bool {
	return s == StateBegan || s == StateChanged
}

// Terminal reports whether s closes a gesture.
func (s State) Terminal() bool {
	return s == StateEnded || s == StateCancelled
}

// StatusName returns the lifecycle suffix appended to a recognizer's name:
// "start", "move", "end", "cancel", or "" for StatePossible.
func (s State) StatusName() string {
	switch s {
	case StateBegan:
		return "start"
	case StateChanged:
		return "move"
	case StateEnded:
		return "end"
	case StateCancelled:
		return "cancel"
	}
	return ""
}

// Flow advances a recognizer's state given whether the current frame is a
// valid instance of its gesture and the frame's phase.
//
// An unrecognized state begins on a valid START or MOVE frame and otherwise
// stays possible; a gesture cannot begin on the frame that lifts the last
// contact. A recognized state ends on END, cancels on CANCEL, continues
// while valid and cancels as soon as it stops being valid. Terminal states
// are treated as possible; Reset normally clears them first.
func Flow(valid bool, s State, p Phase) State {
	if !s.Recognized() {
		if valid && (p == PhaseStart || p == PhaseMove) {
			return StateBegan
		}
		return StatePossible
	}
	switch p {
	case PhaseEnd:
		return StateEnded
	case PhaseCancel:
		return StateCancelled
	}
	if valid {
		return StateChanged
	}
	return StateCancelled
}

// Reset returns StatePossible after a terminal state and s otherwise. It runs
// before every frame so a new gesture can begin on the next qualifying frame.
func Reset(s State) State {
	if s.Terminal() {
		return StatePossible
	}
	return s
}
