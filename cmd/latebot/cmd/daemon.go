package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/latebot/internal/adapters/socket"
	"github.com/corey/latebot/internal/app"
	"github.com/corey/latebot/internal/logging"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the latebot daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon (runs in the foreground)",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	root := botRoot()
	paths := app.NewPaths(root)
	sockPath := socket.SocketPath(root)

	client := socket.NewClient(sockPath)
	if client.Ping() {
		fmt.Println("⏰ daemon already running")
		return nil
	}

	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("create .latebot dirs: %w", err)
	}

	// Re-initialize logging so the daemon also writes its log file.
	if logCloser != nil {
		logCloser.Close()
	}
	logCloser = logging.Setup(verboseFlag, paths.DaemonLog)

	a, err := app.New(app.Config{Root: root, SocketPath: sockPath})
	if err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("cannot start: %s", diagnoseDBLock(root))
		}
		return fmt.Errorf("init: %w", err)
	}

	if err := a.Start(); err != nil {
		a.Close()
		return err
	}
	if err := os.WriteFile(paths.PIDFile, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		log := logging.GetLogger("daemon")
		log.Warn().Err(err).Msg("Failed to write PID file")
	}

	fmt.Printf("⏰ latebot daemon started at %s\n", sockPath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-a.Server.ShutdownCh():
	}

	fmt.Println("\n⏰ shutting down...")
	paths.CleanEphemeral()
	return a.Stop()
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(socket.SocketPath(botRoot()))

	if !client.Ping() {
		fmt.Println("⏰ daemon is not running")
		return nil
	}

	if err := client.Shutdown(); err != nil {
		return err
	}

	fmt.Println("⏰ daemon stopped")
	return nil
}
