package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/latebot/internal/adapters/socket"
	"github.com/corey/latebot/internal/config"
)

var countCmd = &cobra.Command{
	Use:   "count <user>",
	Short: "Show how many times a user has been late",
	Args:  cobra.ExactArgs(1),
	RunE:  runCount,
}

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "List every user's late count",
	Args:  cobra.NoArgs,
	RunE:  runCounts,
}

var resetCmd = &cobra.Command{
	Use:   "reset <user>",
	Short: "Clear a user's late count",
	Args:  cobra.ExactArgs(1),
	RunE:  runReset,
}

// The counter commands delegate to the daemon when it runs (it holds the
// bbolt lock) and open the database directly otherwise.

func runCount(cmd *cobra.Command, args []string) error {
	root := botRoot()
	user := args[0]

	client := socket.NewClient(socket.SocketPath(root))
	if client.Ping() {
		res, err := client.Count(user)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Reply)
		return nil
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	store, err := openStore(root)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Count(user)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), config.RenderReply(cfg.Bot.CountReply, user, n))
	return nil
}

func runCounts(cmd *cobra.Command, args []string) error {
	root := botRoot()

	client := socket.NewClient(socket.SocketPath(root))
	if client.Ping() {
		res, err := client.Counts()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), formatCounts(res))
		return nil
	}

	store, err := openStore(root)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.Counts()
	if err != nil {
		return err
	}
	res := &socket.CountsResult{Counts: counts}
	for _, c := range counts {
		res.Total += c.Count
	}
	fmt.Fprint(cmd.OutOrStdout(), formatCounts(res))
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	root := botRoot()
	user := args[0]

	client := socket.NewClient(socket.SocketPath(root))
	if client.Ping() {
		if err := client.Reset(user); err != nil {
			return err
		}
	} else {
		store, err := openStore(root)
		if err != nil {
			return err
		}
		err = store.Reset(user)
		store.Close()
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "⏰ reset %s\n", user)
	return nil
}
