package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables the CLI reads.
const envPrefix = "CLOCKFACE_"

// runConfig holds the settings for one render run. Values are layered:
// compiled defaults, then CLOCKFACE_* environment variables, then flags.
type runConfig struct {
	// StyleDir is the directory holding style sheets and their images.
	StyleDir string `koanf:"style_dir"`
	// Style is the style sheet id to resolve.
	Style string `koanf:"style"`
	// Count is the number of clock instances to run.
	Count int `koanf:"count"`
	// FPS is the per-instance update rate.
	FPS float64 `koanf:"fps"`
	// Motion is the motion style name (none, smooth, jumping, impulse).
	Motion string `koanf:"motion"`
	// Size is the rendered dial size in pixels (the host container's
	// minimum dimension).
	Size int `koanf:"size"`
	// Duration is how long to drive the scheduler.
	Duration time.Duration `koanf:"duration"`
	// Out is the directory PNG frames are written to.
	Out string `koanf:"out"`
}

func defaults() *runConfig {
	return &runConfig{
		StyleDir: "styles",
		Style:    "default",
		Count:    1,
		FPS:      80,
		Motion:   "none",
		Size:     256,
		Duration: 3 * time.Second,
		Out:      "out",
	}
}

// loadConfig layers CLOCKFACE_* environment variables over the compiled
// defaults.
func loadConfig() (*runConfig, error) {
	k := koanf.New(".")
	cfg := defaults()

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
