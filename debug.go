package gesture

import "fmt"

// SetDebugMode enables or disables debug mode. When enabled, every recognizer
// state change is printed to stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// traceTransition prints a state change when debug mode is on.
func (e *Engine) traceTransition(ctx *Context, from State, c *Computed) {
	if !e.debug || from == ctx.state {
		return
	}
	_, _ = fmt.Fprintf(e.debugOut,
		"[gesture] frame %d | %s: %s -> %s | phase: %s | contacts: %d\n",
		e.frame, ctx.Name(), from, ctx.state, c.Phase, c.PointLength)
}
