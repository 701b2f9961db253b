package gesture

import (
	"fmt"
	"math"
	"time"

	"seehuhn.de/go/geom/vec"
)

// Phase is the physical lifecycle stage of a contact group.
// A group sees PhaseStart once, then any number of PhaseMove frames, then
// exactly one PhaseEnd or PhaseCancel.
type Phase uint8

const (
	PhaseStart  Phase = iota // first contact went down
	PhaseMove                // contacts moved, were added or were removed
	PhaseEnd                 // last contact lifted
	PhaseCancel              // platform aborted the interaction
)

var phaseNames = [...]string{"start", "move", "end", "cancel"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Terminal reports whether p closes a contact group.
func (p Phase) Terminal() bool {
	return p == PhaseEnd || p == PhaseCancel
}

// ParsePhase returns the Phase named by s ("start", "move", "end", "cancel").
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("gesture: unknown phase %q", s)
}

// Direction is one of eight compass octants. The zero value means the
// direction could not be resolved.
type Direction uint8

const (
	DirectionNone      Direction = iota // movement below DirectionEpsilon
	DirectionRight                      // +X
	DirectionUpRight                    // +X, -Y
	DirectionUp                         // -Y (screen coordinates grow downward)
	DirectionUpLeft                     // -X, -Y
	DirectionLeft                       // -X
	DirectionDownLeft                   // -X, +Y
	DirectionDown                       // +Y
	DirectionDownRight                  // +X, +Y
)

var directionNames = [...]string{"", "right", "upright", "up", "upleft", "left", "downleft", "down", "downright"}

// String returns the event suffix for d, or "" for DirectionNone.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return ""
}

// Directions lists every resolvable direction in counter-clockwise order
// starting at DirectionRight.
func Directions() []Direction {
	return []Direction{
		DirectionRight, DirectionUpRight, DirectionUp, DirectionUpLeft,
		DirectionLeft, DirectionDownLeft, DirectionDown, DirectionDownRight,
	}
}

// Sample is one contact position at one instant. Time is measured from an
// arbitrary origin chosen by the input source; only differences matter.
type Sample struct {
	ID   int
	Pos  vec.Vec2
	Time time.Duration
}

// Valid reports whether the sample carries a usable position.
func (s Sample) Valid() bool {
	return !math.IsNaN(s.Pos.X) && !math.IsNaN(s.Pos.Y) &&
		!math.IsInf(s.Pos.X, 0) && !math.IsInf(s.Pos.Y, 0)
}

// Frame is one synchronous batch of contact samples. Samples are ordered;
// the first one is the primary contact.
type Frame struct {
	Phase   Phase
	Samples []Sample
}

// Pt is shorthand for building a vec.Vec2.
func Pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
