package gesture

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
	"seehuhn.de/go/geom/vec"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string `json:"action"`

	// drag
	FromX float64 `json:"fromX,omitempty"`
	FromY float64 `json:"fromY,omitempty"`
	ToX   float64 `json:"toX,omitempty"`
	ToY   float64 `json:"toY,omitempty"`

	// pinch / rotate
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	FromDist  float64 `json:"fromDist,omitempty"`
	ToDist    float64 `json:"toDist,omitempty"`
	Dist      float64 `json:"dist,omitempty"`
	FromAngle float64 `json:"fromAngle,omitempty"`
	ToAngle   float64 `json:"toAngle,omitempty"`

	// frame
	Phase  string       `json:"phase,omitempty"`
	Points [][2]float64 `json:"points,omitempty"`

	Frames int     `json:"frames,omitempty"`
	StepMS float64 `json:"stepMs,omitempty"`
	Ease   string  `json:"ease,omitempty"`

	// wait
	MS float64 `json:"ms,omitempty"`
}

// scriptFile is the top-level JSON structure for a gesture script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

var easings = map[string]ease.TweenFunc{
	"":           ease.Linear,
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
}

// Script is a parsed gesture script. Steps run back to back on one clock:
// each gesture starts one frame step after the previous one ended.
//
//	{"steps": [
//		{"action": "drag", "fromX": 0, "fromY": 0, "toX": 120, "toY": 0, "frames": 8},
//		{"action": "wait", "ms": 250},
//		{"action": "pinch", "x": 200, "y": 200, "fromDist": 100, "toDist": 200, "ease": "outQuad"},
//		{"action": "frame", "phase": "cancel", "points": [[10, 10]]}
//	]}
type Script struct {
	steps []scriptStep
}

// LoadScript parses and validates a JSON gesture script.
func LoadScript(jsonData []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("gesture: parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("gesture: parse script: no steps")
	}
	for i, st := range file.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("gesture: parse script: step %d: %w", i, err)
		}
	}
	return &Script{steps: file.Steps}, nil
}

func (st scriptStep) validate() error {
	if _, ok := easings[st.Ease]; !ok {
		return fmt.Errorf("unknown easing %q", st.Ease)
	}
	if st.StepMS < 0 {
		return fmt.Errorf("negative stepMs %v", st.StepMS)
	}
	switch st.Action {
	case "drag", "pinch", "rotate":
		return nil
	case "frame":
		if _, err := ParsePhase(st.Phase); err != nil {
			return err
		}
		return nil
	case "wait":
		if st.MS < 0 {
			return fmt.Errorf("negative wait %v", st.MS)
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Frames expands the script into a single timestamped frame sequence.
func (s *Script) Frames() []Frame {
	var out []Frame
	var clock time.Duration
	for _, st := range s.steps {
		step := millis(st.StepMS)
		if step <= 0 {
			step = DefaultFrameStep
		}
		fn := easings[st.Ease]

		var seq []Frame
		switch st.Action {
		case "drag":
			seq = DragFrames(vec.Vec2{X: st.FromX, Y: st.FromY}, vec.Vec2{X: st.ToX, Y: st.ToY}, st.Frames, step, fn)
		case "pinch":
			seq = PinchFrames(vec.Vec2{X: st.X, Y: st.Y}, st.FromDist, st.ToDist, st.Frames, step, fn)
		case "rotate":
			seq = RotateFrames(vec.Vec2{X: st.X, Y: st.Y}, st.Dist, st.FromAngle, st.ToAngle, st.Frames, step, fn)
		case "frame":
			phase, _ := ParsePhase(st.Phase)
			f := Frame{Phase: phase}
			for i, p := range st.Points {
				f.Samples = append(f.Samples, Sample{ID: i, Pos: vec.Vec2{X: p[0], Y: p[1]}})
			}
			seq = []Frame{f}
		case "wait":
			clock += millis(st.MS)
			continue
		}

		seq = Shift(seq, clock)
		out = append(out, seq...)
		clock += time.Duration(len(seq)) * step
	}
	return out
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
