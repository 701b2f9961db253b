package gesture

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"seehuhn.de/go/geom/vec"
)

// DefaultFrameStep is the timestamp spacing used when a step of zero is
// passed to the synthetic builders (one 60 Hz tick).
const DefaultFrameStep = 16 * time.Millisecond

// DragFrames builds a single-contact sequence: START at from, frames-2 eased MOVE
// frames, END at to. The total sequence is `frames` frames long; the minimum
// is 2 (start + end). A nil easing function means linear.
func DragFrames(from, to vec.Vec2, frames int, step time.Duration, fn ease.TweenFunc) []Frame {
	frames, step, fn = syntheticDefaults(frames, step, fn)
	xs := tweenValues(from.X, to.X, frames, fn)
	ys := tweenValues(from.Y, to.Y, frames, fn)

	out := make([]Frame, frames)
	for i := range out {
		out[i] = Frame{
			Phase: syntheticPhase(i, frames),
			Samples: []Sample{{
				ID:   0,
				Pos:  vec.Vec2{X: xs[i], Y: ys[i]},
				Time: time.Duration(i) * step,
			}},
		}
	}
	return out
}

// PinchFrames builds a two-contact sequence with the contacts placed horizontally
// around center, their distance eased from fromDist to toDist.
func PinchFrames(center vec.Vec2, fromDist, toDist float64, frames int, step time.Duration, fn ease.TweenFunc) []Frame {
	frames, step, fn = syntheticDefaults(frames, step, fn)
	dists := tweenValues(fromDist, toDist, frames, fn)

	out := make([]Frame, frames)
	for i := range out {
		out[i] = pairFrame(syntheticPhase(i, frames), center, dists[i], 0, time.Duration(i)*step)
	}
	return out
}

// RotateFrames builds a two-contact sequence with the contacts dist apart around
// center, their angle eased from fromDeg to toDeg.
func RotateFrames(center vec.Vec2, dist, fromDeg, toDeg float64, frames int, step time.Duration, fn ease.TweenFunc) []Frame {
	frames, step, fn = syntheticDefaults(frames, step, fn)
	angles := tweenValues(fromDeg, toDeg, frames, fn)

	out := make([]Frame, frames)
	for i := range out {
		out[i] = pairFrame(syntheticPhase(i, frames), center, dist, angles[i], time.Duration(i)*step)
	}
	return out
}

// Shift returns a copy of frames with every timestamp moved by offset.
func Shift(frames []Frame, offset time.Duration) []Frame {
	out := make([]Frame, len(frames))
	for i, f := range frames {
		samples := make([]Sample, len(f.Samples))
		for j, s := range f.Samples {
			s.Time += offset
			samples[j] = s
		}
		out[i] = Frame{Phase: f.Phase, Samples: samples}
	}
	return out
}

// pairFrame places contacts 0 and 1 on opposite sides of center.
func pairFrame(phase Phase, center vec.Vec2, dist, deg float64, t time.Duration) Frame {
	rad := deg * math.Pi / 180
	half := vec.Vec2{X: math.Cos(rad), Y: math.Sin(rad)}.Mul(dist / 2)
	return Frame{
		Phase: phase,
		Samples: []Sample{
			{ID: 0, Pos: center.Sub(half), Time: t},
			{ID: 1, Pos: center.Add(half), Time: t},
		},
	}
}

func syntheticDefaults(frames int, step time.Duration, fn ease.TweenFunc) (int, time.Duration, ease.TweenFunc) {
	if frames < 2 {
		frames = 2
	}
	if step <= 0 {
		step = DefaultFrameStep
	}
	if fn == nil {
		fn = ease.Linear
	}
	return frames, step, fn
}

func syntheticPhase(i, frames int) Phase {
	switch i {
	case 0:
		return PhaseStart
	case frames - 1:
		return PhaseEnd
	}
	return PhaseMove
}

// tweenValues samples an eased tween from -> to at frames evenly spaced
// ticks. The first and last values are exactly from and to.
func tweenValues(from, to float64, frames int, fn ease.TweenFunc) []float64 {
	tw := gween.New(float32(from), float32(to), float32(frames-1), fn)
	vals := make([]float64, frames)
	vals[0] = from
	for i := 1; i < frames-1; i++ {
		v, _ := tw.Update(1)
		vals[i] = float64(v)
	}
	vals[frames-1] = to
	return vals
}
