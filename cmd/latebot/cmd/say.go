package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/latebot/internal/adapters/socket"
)

var sayUser string

var sayCmd = &cobra.Command{
	Use:   "say --user <id> <text...>",
	Short: "Send a chat message to the daemon",
	Long:  "Feeds one message to the running daemon and prints the bot's reply, if any.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSay,
}

func init() {
	sayCmd.Flags().StringVarP(&sayUser, "user", "u", "", "User the message is from (required)")
	sayCmd.MarkFlagRequired("user")
}

func runSay(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socket.SocketPath(botRoot()))
	if !client.Ping() {
		return fmt.Errorf("daemon is not running (start it with: latebot daemon start)")
	}

	res, err := client.Message(sayUser, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if res.Reply != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Reply)
	}
	return nil
}
