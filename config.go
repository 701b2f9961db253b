package gesture

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RecognizerEnv holds environment overrides for one recognizer. Unset
// variables leave the recognizer's defaults in place.
type RecognizerEnv struct {
	Threshold   *float64 `env:"THRESHOLD"`
	PointLength *int     `env:"POINT_LENGTH"`
	Disabled    bool     `env:"DISABLED"`
}

// Options converts the overrides into functional options.
func (r RecognizerEnv) Options() []Option {
	var opts []Option
	if r.Threshold != nil {
		opts = append(opts, WithThreshold(*r.Threshold))
	}
	if r.PointLength != nil {
		opts = append(opts, WithPointLength(*r.PointLength))
	}
	return opts
}

// EnvConfig is the environment-driven configuration for the built-in
// recognizers, e.g. GESTURE_PAN_THRESHOLD=20 with prefix "GESTURE_".
type EnvConfig struct {
	Pan    RecognizerEnv `envPrefix:"PAN_"`
	Pinch  RecognizerEnv `envPrefix:"PINCH_"`
	Rotate RecognizerEnv `envPrefix:"ROTATE_"`
	Debug  bool          `env:"DEBUG"`
}

// ParseEnvConfig loads an EnvConfig from variables starting with prefix.
func ParseEnvConfig(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: prefix}); err != nil {
		return EnvConfig{}, fmt.Errorf("gesture: parse env: %w", err)
	}
	return cfg, nil
}

// Recognizers bundles the built-in recognizers created by EnvConfig.Install.
type Recognizers struct {
	Pan    *Pan
	Pinch  *Pinch
	Rotate *Rotate
}

// Install creates pan, pinch and rotate on e with the configured overrides,
// applies the disabled flags and debug mode.
func (c EnvConfig) Install(e *Engine) (Recognizers, error) {
	// Validate everything up front so a bad override registers nothing.
	for _, chk := range []struct {
		defaults Options
		opts     []Option
	}{
		{DefaultPanOptions(), c.Pan.Options()},
		{DefaultPinchOptions(), c.Pinch.Options()},
		{DefaultRotateOptions(), c.Rotate.Options()},
	} {
		if _, err := buildOptions(chk.defaults, chk.opts); err != nil {
			return Recognizers{}, err
		}
	}

	var rs Recognizers
	var err error
	if rs.Pan, err = NewPan(e, c.Pan.Options()...); err != nil {
		return Recognizers{}, err
	}
	if rs.Pinch, err = NewPinch(e, c.Pinch.Options()...); err != nil {
		return Recognizers{}, err
	}
	if rs.Rotate, err = NewRotate(e, c.Rotate.Options()...); err != nil {
		return Recognizers{}, err
	}
	rs.Pan.Context().SetDisabled(c.Pan.Disabled)
	rs.Pinch.Context().SetDisabled(c.Pinch.Disabled)
	rs.Rotate.Context().SetDisabled(c.Rotate.Disabled)
	e.SetDebugMode(c.Debug)
	return rs, nil
}
