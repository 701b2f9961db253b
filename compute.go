package gesture

import (
	"math"
	"time"

	"seehuhn.de/go/geom/vec"
)

// DirectionEpsilon is the minimum per-frame displacement for a direction
// to resolve. Smaller movements leave Direction unset.
const DirectionEpsilon = 0.5

// Computation derives part of a Computed record from the current input.
// Computations run in the order a recognizer declares them and may read
// fields written earlier in the same frame.
type Computation interface {
	Compute(in *Input, c *Computed)
}

// ComputationFunc adapts a stateless function to Computation.
type ComputationFunc func(in *Input, c *Computed)

// Compute calls f(in, c).
func (f ComputationFunc) Compute(in *Input, c *Computed) {
	f(in, c)
}

// ComputeFactory creates a Computation for a single registration, so
// stateful computations never share history between recognizers.
type ComputeFactory func() Computation

// ComputeDistance sets Distance: how far the primary contact is from where
// it first touched down.
func ComputeDistance() Computation {
	return ComputationFunc(func(in *Input, c *Computed) {
		d, ok := primaryDisplacement(in)
		if !ok {
			return
		}
		c.Distance = d.Length()
		c.Set(FieldDistance)
	})
}

// ComputeDeltaXY sets DeltaX and DeltaY, the primary contact's signed
// displacement since it first touched down.
func ComputeDeltaXY() Computation {
	return ComputationFunc(func(in *Input, c *Computed) {
		d, ok := primaryDisplacement(in)
		if !ok {
			return
		}
		c.DeltaX, c.DeltaY = d.X, d.Y
		c.Set(FieldDelta)
	})
}

// ComputeDirection sets Direction from the primary contact's movement since
// the previous frame.
func ComputeDirection() Computation {
	return ComputationFunc(func(in *Input, c *Computed) {
		d, _, ok := primaryStep(in)
		if !ok {
			return
		}
		if dir := classifyDirection(d); dir != DirectionNone {
			c.Direction = dir
			c.Set(FieldDirection)
		}
	})
}

// ComputeVelocityAndDirection sets Velocity (units per millisecond) and
// Direction from the primary contact's movement since the previous frame.
// Zero elapsed time yields zero velocity. A frame with no previous sample
// for the primary contact reports zero velocity and no direction.
func ComputeVelocityAndDirection() Computation {
	return ComputationFunc(func(in *Input, c *Computed) {
		if _, ok := in.Primary(); !ok {
			return
		}
		c.Set(FieldVelocity)

		d, dt, ok := primaryStep(in)
		if !ok {
			return
		}
		if ms := float64(dt.Microseconds()) / 1000; ms > 0 {
			c.VelocityX = d.X / ms
			c.VelocityY = d.Y / ms
			c.Velocity = d.Length() / ms
		}
		if dir := classifyDirection(d); dir != DirectionNone {
			c.Direction = dir
			c.Set(FieldDirection)
		}
	})
}

// ComputeVector sets Vector (second contact minus first), StartVector (the
// vector when the current pair of contacts formed), PrevVector (the vector of
// the previous multi-contact frame) and Center. Fewer than two valid
// contacts leave the fields unset and forget the pair.
func ComputeVector() Computation {
	return &vectorComputation{}
}

type vectorComputation struct {
	paired bool
	ids    [2]int
	start  vec.Vec2
	prev   vec.Vec2
}

func (vc *vectorComputation) Compute(in *Input, c *Computed) {
	if in.Restarted() {
		vc.paired = false
	}
	samples := in.Frame.Samples
	if len(samples) < 2 || !samples[0].Valid() || !samples[1].Valid() {
		vc.paired = false
		return
	}
	a, b := samples[0], samples[1]
	v := b.Pos.Sub(a.Pos)
	if !vc.paired || vc.ids != [2]int{a.ID, b.ID} {
		vc.paired = true
		vc.ids = [2]int{a.ID, b.ID}
		vc.start = v
		vc.prev = v
	}

	c.Vector = v
	c.StartVector = vc.start
	c.PrevVector = vc.prev
	c.Center = a.Pos.Add(b.Pos).Mul(0.5)
	c.Set(FieldVector)

	vc.prev = v
}

// ComputeScale sets Scale (current contact spread over the spread when the
// pair formed) and DeltaScale (over the previous multi-contact frame).
// It reads the fields of ComputeVector, which must run first.
func ComputeScale() Computation {
	return ComputationFunc(func(in *Input, c *Computed) {
		if !c.Has(FieldVector) {
			return
		}
		cur := c.Vector.Length()
		if start := c.StartVector.Length(); start > 0 {
			c.Scale = cur / start
			c.Set(FieldScale)
		}
		if prev := c.PrevVector.Length(); prev > 0 {
			c.DeltaScale = cur / prev
			c.Set(FieldDeltaScale)
		}
	})
}

// ComputeAngle sets Angle (rotation since the pair formed) and DeltaAngle
// (rotation since the previous multi-contact frame). It reads the fields of
// ComputeVector, which must run first.
func ComputeAngle() Computation {
	return ComputationFunc(func(in *Input, c *Computed) {
		if !c.Has(FieldVector) {
			return
		}
		if isZero(c.Vector) || isZero(c.StartVector) || isZero(c.PrevVector) {
			return
		}
		a := vectorDegrees(c.Vector)
		c.Angle = normalizeDegrees(a - vectorDegrees(c.StartVector))
		c.DeltaAngle = normalizeDegrees(a - vectorDegrees(c.PrevVector))
		c.Set(FieldAngle)
	})
}

// primaryDisplacement returns the primary contact's offset from its first touch.
func primaryDisplacement(in *Input) (vec.Vec2, bool) {
	cur, ok := in.Primary()
	if !ok {
		return vec.Vec2{}, false
	}
	first, ok := in.FirstTouch(cur.ID)
	if !ok {
		return vec.Vec2{}, false
	}
	return cur.Pos.Sub(first.Pos), true
}

// primaryStep returns the primary contact's movement since the previous frame.
func primaryStep(in *Input) (vec.Vec2, time.Duration, bool) {
	cur, ok := in.Primary()
	if !ok {
		return vec.Vec2{}, 0, false
	}
	prev, ok := in.Previous(cur.ID)
	if !ok {
		return vec.Vec2{}, 0, false
	}
	return cur.Pos.Sub(prev.Pos), cur.Time - prev.Time, true
}

// classifyDirection buckets d into one of eight 45° octants centred on the
// axes and diagonals.
func classifyDirection(d vec.Vec2) Direction {
	if d.Length() < DirectionEpsilon {
		return DirectionNone
	}
	// Flip Y so angles grow counter-clockwise on screen.
	deg := math.Atan2(-d.Y, d.X) * 180 / math.Pi
	sector := int(math.Floor((deg + 22.5) / 45))
	sector = (sector%8 + 8) % 8
	return Direction(sector + 1)
}

func vectorDegrees(v vec.Vec2) float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

func normalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a <= -180 {
		a += 360
	} else if a > 180 {
		a -= 360
	}
	return a
}

func isZero(v vec.Vec2) bool {
	return v.X == 0 && v.Y == 0
}
