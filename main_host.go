//go:build !tinygo

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"watchface/app"
	"watchface/face"
	"watchface/hal"
	"watchface/internal/buildinfo"
	"watchface/resources"
	"watchface/shell"

	"github.com/spf13/cobra"
)

type options struct {
	headless hal.HeadlessConfig
	host     hal.HostConfig

	ambientAfter time.Duration
	tickPeriod   time.Duration
	dimens       string
	script       string
	verbose      bool
	noWakeLock   bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "watchface",
		Short:   "Interactive watch face simulator",
		Version: buildinfo.Short(),
		Long: `Runs the interactive watch face in a desktop window, or headless.

Window keys:
  a  toggle ambient mode      v  toggle visibility
  r  toggle round/square      p  toggle the peek card
  b  toggle burn-in           l  toggle low-bit ambient
  Esc cancels the touch in progress.

Example:
  watchface --round --ambient-after 10s
  watchface --headless --fast --ticks 600 --script demo.yaml --snapshot out.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.headless.Enabled, "headless", false, "run without a window")
	f.IntVar(&opts.headless.Hz, "hz", 60, "loop rate in headless mode")
	f.Uint64Var(&opts.headless.Ticks, "ticks", 0, "stop after N loop passes in headless mode (0 = run forever)")
	f.BoolVar(&opts.headless.Fast, "fast", false, "advance virtual time without waiting (headless)")
	f.StringVar(&opts.headless.Snapshot, "snapshot", "", "write the last frame as PNG on exit (headless)")
	f.IntVar(&opts.host.Width, "width", 320, "screen width in pixels")
	f.IntVar(&opts.host.Height, "height", 320, "screen height in pixels")
	f.BoolVar(&opts.host.Round, "round", false, "report a round screen")
	f.BoolVar(&opts.host.Caps.LowBitAmbient, "low-bit", false, "report low-bit ambient support")
	f.BoolVar(&opts.host.Caps.BurnInProtection, "burn-in", false, "report burn-in protection")
	f.BoolVar(&opts.host.DenyWakeLock, "deny-wakelock", false, "make the platform refuse wake locks")
	f.BoolVar(&opts.noWakeLock, "no-wakelock", false, "run without taking a wake lock")
	f.DurationVar(&opts.ambientAfter, "ambient-after", 0, "enter ambient mode after this much inactivity (0 = never)")
	f.DurationVar(&opts.tickPeriod, "tick-period", face.DefaultTickPeriod, "interactive redraw period")
	f.StringVar(&opts.dimens, "dimens", "", "YAML file overriding the layout dimensions")
	f.StringVar(&opts.script, "script", "", "YAML scenario replayed against the face")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every face callback")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	if opts.headless.Fast && opts.headless.Ticks == 0 {
		return errors.New("--fast needs --ticks")
	}

	cfg := app.Config{
		TickPeriod: opts.tickPeriod,
		Dimens:     resources.Default(),
		Shell:      shell.Config{AmbientAfter: opts.ambientAfter},
		LogLevel:   slog.LevelInfo,
		NoWakeLock: opts.noWakeLock,
	}
	if opts.verbose {
		cfg.LogLevel = slog.LevelDebug
	}
	if opts.dimens != "" {
		d, err := resources.LoadFile(opts.dimens)
		if err != nil {
			return err
		}
		cfg.Dimens = d
	}
	if opts.script != "" {
		sc, err := shell.LoadScriptFile(opts.script)
		if err != nil {
			return err
		}
		cfg.Script = sc
	}

	newProgram := func(h hal.HAL) (hal.Program, error) {
		return app.New(h, cfg)
	}

	if !opts.headless.Enabled {
		return hal.RunWindow(opts.host, newProgram)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	err := hal.RunHeadless(ctx, opts.host, opts.headless, newProgram)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
