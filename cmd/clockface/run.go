package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/go-drift/clockface/pkg/frametrace"
	"github.com/go-drift/clockface/pkg/render"
	"github.com/go-drift/clockface/pkg/style"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive clock instances and render their dials",
	RunE:  runClocks,
}

func init() {
	registerRunFlags(runCmd.Flags())
}

func registerRunFlags(flags *pflag.FlagSet) {
	flags.String("styles", "", "directory containing style sheets")
	flags.String("style", "", "style sheet id to render with")
	flags.Int("count", 0, "number of clock instances")
	flags.Float64("fps", 0, "per-instance update rate")
	flags.String("motion", "", "motion style: none, smooth, jumping, impulse")
	flags.Int("size", 0, "rendered dial size in pixels")
	flags.Duration("duration", 0, "how long to run the scheduler")
	flags.String("out", "", "output directory for PNG frames")
}

func runClocks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	motion, err := clockface.ParseMotionStyle(cfg.Motion)
	if err != nil {
		return err
	}

	store := style.NewStore(os.DirFS(cfg.StyleDir))
	st, err := store.Resolve(cfg.Style)
	if err != nil {
		return err
	}

	sink := render.NewImageSink(st.Scaled(cfg.Size), cfg.Size)
	trace := frametrace.NewCollector(0)
	sched := clockface.NewScheduler(clockface.SchedulerOptions{
		Sink:  sink,
		Trace: trace,
	})

	ids := make([]string, cfg.Count)
	for i := range ids {
		id := sched.CreateInstance()
		if err := sched.SetFPS(id, cfg.FPS); err != nil {
			return err
		}
		if err := sched.SetMotionStyle(id, motion); err != nil {
			return err
		}
		if err := sched.Start(id); err != nil {
			return err
		}
		ids[i] = id
	}

	fmt.Printf("Running %d %s clock(s) at %.0f FPS for %s...\n",
		cfg.Count, motion, cfg.FPS, cfg.Duration)
	time.Sleep(cfg.Duration)

	for _, id := range ids {
		if err := sched.Stop(id); err != nil {
			return err
		}
	}

	if err := writeFrames(sink, ids, cfg.Out); err != nil {
		return err
	}
	printTrace(trace.Snapshot())
	return nil
}

// applyFlags overrides env/default config with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *runConfig) {
	flags := cmd.Flags()
	if flags.Changed("styles") {
		cfg.StyleDir, _ = flags.GetString("styles")
	}
	if flags.Changed("style") {
		cfg.Style, _ = flags.GetString("style")
	}
	if flags.Changed("count") {
		cfg.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("fps") {
		cfg.FPS, _ = flags.GetFloat64("fps")
	}
	if flags.Changed("motion") {
		cfg.Motion, _ = flags.GetString("motion")
	}
	if flags.Changed("size") {
		cfg.Size, _ = flags.GetInt("size")
	}
	if flags.Changed("duration") {
		cfg.Duration, _ = flags.GetDuration("duration")
	}
	if flags.Changed("out") {
		cfg.Out, _ = flags.GetString("out")
	}
}

func writeFrames(sink *render.ImageSink, ids []string, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	for i, id := range ids {
		frame, ok := sink.Frame(id)
		if !ok {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("clock-%d.png", i))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(f, frame); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func printTrace(snap frametrace.Snapshot) {
	if snap.Ticks == 0 {
		return
	}
	fmt.Printf("frames: %d ticks, %d over budget, p50=%s p95=%s p99=%s max=%s\n",
		snap.Ticks, snap.Dropped, snap.P50, snap.P95, snap.P99, snap.Max)
}
