package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/latebot/internal/adapters/socket"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Make the daemon re-read its config file",
	Long:  "The daemon reloads on its own when config.toml changes. This forces a reload, for example when the file watcher is unavailable.",
	RunE:  runReload,
}

func runReload(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socket.SocketPath(botRoot()))
	if !client.Ping() {
		return fmt.Errorf("daemon is not running")
	}

	res, err := client.Reload()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⏰ reloaded %d phrases (%s)\n", res.PhraseCount, res.Scorer)
	return nil
}
