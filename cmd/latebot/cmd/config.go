package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/latebot/internal/adapters/socket"
	"github.com/corey/latebot/internal/app"
	"github.com/corey/latebot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows paths, daemon status, and the effective match settings. No daemon required.",
	RunE:  runConfig,
}

// loadConfig reads .latebot/config.toml under root, falling back to defaults.
func loadConfig(root string) (*config.Config, error) {
	cfg, _, err := config.Load(app.NewPaths(root).Config)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := botRoot()
	paths := app.NewPaths(root)
	sockPath := socket.SocketPath(root)

	cfg, exists, err := config.Load(paths.Config)
	if err != nil {
		return err
	}

	daemonStatus := paint(colorYellow, "✗ not running")
	if socket.NewClient(sockPath).Ping() {
		daemonStatus = paint(colorGreen, "✓ running")
	}
	configNote := ""
	if !exists {
		configNote = " " + paint(colorGray, "(missing, using defaults)")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, paint(colorBold, "⏰ latebot config"))
	fmt.Fprintf(out, "  Root:       %s\n", root)
	fmt.Fprintf(out, "  Config:     %s%s\n", paths.Config, configNote)
	fmt.Fprintf(out, "  DB:         %s\n", paths.DB)
	fmt.Fprintf(out, "  Socket:     %s\n", sockPath)
	fmt.Fprintf(out, "  Daemon:     %s\n", daemonStatus)
	fmt.Fprintf(out, "  Threshold:  %g\n", cfg.Match.SimilarityThreshold)
	fmt.Fprintf(out, "  Interrupt:  %d\n", cfg.Match.InterruptThreshold)
	fmt.Fprintf(out, "  Scorer:     %s\n", cfg.Match.Scorer)
	fmt.Fprintf(out, "  Phrases:    %s\n", strings.Join(cfg.Match.Phrases, " | "))
	fmt.Fprintf(out, "  Store:      %s\n", cfg.Store.Backend)
	return nil
}
