package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/forge/internal/domain"
	"github.com/MrSnakeDoc/forge/internal/logger"
	"github.com/MrSnakeDoc/forge/internal/scheduler"
)

var (
	watchConfigPath  string
	watchPreset      string
	watchPresetsFile string
	watchInterval    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the countdown of a configuration file in the terminal",
	Long: `Counts down to the target of a YAML configuration file, one line per
tick, and shows the expiry behavior once the target is reached. Stops on
expiry or interrupt.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchConfigPath, "config", "c", "", "configuration file (YAML)")
	watchCmd.Flags().StringVarP(&watchPreset, "preset", "p", "", "preset laid over the configuration")
	watchCmd.Flags().StringVar(&watchPresetsFile, "presets", os.Getenv("FORGE_PRESET_FILE"), "presets file completing the built-in presets")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", scheduler.DefaultTickInterval, "tick interval")
	_ = watchCmd.MarkFlagRequired("config")
}

func runWatch(cmd *cobra.Command, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfiguration(ctx, watchConfigPath, watchPreset, watchPresetsFile)
	if err != nil {
		return err
	}
	cfg = cfg.Normalize()

	return watchCountdown(ctx, cmd.OutOrStdout(), cfg, scheduler.SystemClock{}, watchInterval)
}

// watchCountdown prints one line per sample until the target is reached or
// ctx is cancelled.
func watchCountdown(ctx context.Context, out io.Writer, cfg domain.Configuration, clock scheduler.Clock, interval time.Duration) error {
	lines := make(chan string, 1)
	expired := make(chan domain.ExpiryView, 1)

	ticker := scheduler.NewCountdownTicker(
		clock,
		time.Local,
		interval,
		cliLogger,
		func(s domain.Sample) {
			cliLogger.Debug("tick", logger.String("sample", s.String()))
			select {
			case <-lines:
			default:
			}
			lines <- formatSample(cfg, s)
		},
		func(v domain.ExpiryView) { expired <- v },
	)
	if err := ticker.Start(ctx, cfg); err != nil {
		return err
	}
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "interrupted")
			return nil
		case line := <-lines:
			fmt.Fprintln(out, line)
		case v := <-expired:
			// the expired sample line may still be pending
			select {
			case line := <-lines:
				fmt.Fprintln(out, line)
			default:
			}
			fmt.Fprintln(out, formatExpiry(v))
			return nil
		}
	}
}

func formatSample(cfg domain.Configuration, s domain.Sample) string {
	if s.Expired {
		return "⏰ expired"
	}
	units := domain.VisibleUnits(cfg, s)
	if len(units) == 0 {
		return "⏳ counting down"
	}
	line := "⏳"
	for _, u := range units {
		line += fmt.Sprintf(" %s %s", domain.Pad(u.Value), u.Label)
	}
	return line
}

func formatExpiry(v domain.ExpiryView) string {
	switch v.Kind {
	case domain.ExpiryHide:
		return "widget hidden"
	case domain.ExpiryRedirect:
		if !v.Navigate {
			return "redirect skipped: no usable URL"
		}
		return "redirect to " + v.RedirectURL
	default:
		return v.Message
	}
}
