package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/latebot/internal/app"
	"github.com/corey/latebot/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .latebot/ with a sample config",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	paths := app.NewPaths(botRoot())
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("create .latebot dirs: %w", err)
	}
	if err := config.CreateSample(paths.Config, initForce); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⏰ wrote %s\n", paths.Config)
	return nil
}
