package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Koagonzalo/XcodeGen/pkg/report"
	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

var (
	watchInterval string
	watchDisable  []string
)

var watchCmd = &cobra.Command{
	Use:   "watch [project.yml]",
	Short: "Re-validate a project spec whenever it changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, err := time.ParseDuration(watchInterval)
	if err != nil {
		return fmt.Errorf("invalid --interval: %w", err)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchSpec(ctx, cmd.OutOrStdout(), args[0], interval, validateRequest{
		Disabled: spec.ParseCategories(watchDisable...),
		Format:   report.FormatText,
	})
}

// watchSpec polls path and re-runs validation when its modification time
// changes. A missing file is reported once and polling continues until it
// reappears. It returns when ctx is done.
func watchSpec(ctx context.Context, w io.Writer, path string, interval time.Duration, req validateRequest) error {
	var last time.Time
	missing := false
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			if !missing {
				missing = true
				last = time.Time{}
				slog.Debug("spec not readable", "path", path, "error", err)
				fmt.Fprintf(w, "%s  %s waiting for %s\n", timestamp(), report.GlyphFailed, path)
			}
		case !info.ModTime().Equal(last):
			missing = false
			last = info.ModTime()
			ts := timestamp()
			var out bytes.Buffer
			n, err := validateSpec(&out, path, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s  %s %s\n", ts, statusIcon(n), summaryLine(n))
			if n > 0 {
				out.WriteTo(w)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

func statusIcon(n int) string {
	if n == 0 {
		return report.GlyphPassed
	}
	return report.GlyphFailed
}

func summaryLine(n int) string {
	if n == 0 {
		return "valid"
	}
	return fmt.Sprintf("%d error(s)", n)
}

func init() {
	watchCmd.Flags().StringVar(&watchInterval, "interval", "2s", "Time between change checks (e.g., 500ms, 2s)")
	watchCmd.Flags().StringArrayVar(&watchDisable, "disable", nil, "Disable a validation category, repeatable")
	rootCmd.AddCommand(watchCmd)
}
