package app

import (
	"strings"

	"github.com/corey/latebot/internal/adapters/socket"
)

// CommandPrintCount replies with the author's count.
const CommandPrintCount = "print_count"

// parseCommand extracts the command name from text when it starts with
// prefix. An empty prefix disables commands.
func parseCommand(prefix, text string) (string, bool) {
	if prefix == "" {
		return "", false
	}
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, prefix) {
		return "", false
	}
	fields := strings.Fields(strings.TrimPrefix(text, prefix))
	if len(fields) == 0 {
		return "", false
	}
	return strings.ToLower(fields[0]), true
}

// runCommand answers a chat command. Unknown commands report false so the
// message is matched like any other.
func (a *App) runCommand(user, name string) (socket.MessageResult, bool, error) {
	switch name {
	case CommandPrintCount:
		res, err := a.Count(user)
		if err != nil {
			return socket.MessageResult{}, true, err
		}
		return socket.MessageResult{Count: res.Count, Reply: res.Reply, Command: name}, true, nil
	default:
		return socket.MessageResult{}, false, nil
	}
}
