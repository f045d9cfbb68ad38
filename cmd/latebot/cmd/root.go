package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/latebot/internal/logging"
)

var (
	rootFlag    string
	verboseFlag int

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "latebot",
	Short: "latebot: keeps count of who is running late",
	Long:  "Fuzzy-matches chat messages against \"I'll be late\" style phrases and counts them per user.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logCloser = logging.Setup(verboseFlag, "")
		colorEnabled = isStdoutTTY()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// botRoot returns the directory holding .latebot/ (cwd unless --root is set).
func botRoot() string {
	dir := rootFlag
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Directory holding .latebot/ (default: current directory)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(countsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
}
