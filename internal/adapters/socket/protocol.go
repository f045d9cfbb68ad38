// Package socket implements a JSON-over-Unix-socket protocol for the latebot daemon.
// The protocol uses newline-delimited JSON: each message is one JSON object + \n.
package socket

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"

	"github.com/corey/latebot/internal/ports"
)

// SocketPath returns the Unix socket path for a given root.
// Format: /tmp/latebot-{first12hex}.sock
func SocketPath(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	h := sha256.Sum256([]byte(abs))
	return fmt.Sprintf("/tmp/latebot-%x.sock", h[:6])
}

// Method names for the protocol.
const (
	MethodMessage  = "message"
	MethodCount    = "count"
	MethodCounts   = "counts"
	MethodReset    = "reset"
	MethodReload   = "reload"
	MethodHealth   = "health"
	MethodShutdown = "shutdown"
)

// Request is the wire format for client-to-server messages.
type Request struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire format for server-to-client messages.
type Response struct {
	ID     string      `json:"id"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// MessageParams is the params for a message request.
type MessageParams struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// MessageResult is the outcome of feeding one chat message to the bot.
// Count is the user's total after the message. Reply is empty when the
// bot stays silent. Command names the chat command the message invoked.
type MessageResult struct {
	Matched bool   `json:"matched"`
	Phrase  string `json:"phrase,omitempty"`
	Count   uint64 `json:"count"`
	Reply   string `json:"reply,omitempty"`
	Command string `json:"command,omitempty"`
}

// UserParams is the params for count and reset requests.
type UserParams struct {
	User string `json:"user"`
}

// CountResult is the result of a count request.
type CountResult struct {
	User  string `json:"user"`
	Count uint64 `json:"count"`
	Reply string `json:"reply"`
}

// CountsResult is the result of a counts request.
type CountsResult struct {
	Counts []ports.UserCount `json:"counts"`
	Total  uint64            `json:"total"`
}

// ReloadResult is the result of a reload request.
type ReloadResult struct {
	PhraseCount int    `json:"phrase_count"`
	Scorer      string `json:"scorer"`
}

// HealthResult is the result of a health request.
type HealthResult struct {
	Status      string `json:"status"`
	PhraseCount int    `json:"phrase_count"`
	Scorer      string `json:"scorer"`
	Uptime      string `json:"uptime"`
}
