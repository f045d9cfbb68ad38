package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
)

// Client connects to the latebot daemon over a Unix socket.
type Client struct {
	sockPath string
}

// NewClient creates a client that will connect to the given socket path.
func NewClient(sockPath string) *Client {
	return &Client{sockPath: sockPath}
}

// Message sends one chat message from user to the daemon.
func (c *Client) Message(user, text string) (*MessageResult, error) {
	var result MessageResult
	if err := c.do(MethodMessage, MessageParams{User: user, Text: text}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Count asks how many times user has been late.
func (c *Client) Count(user string) (*CountResult, error) {
	var result CountResult
	if err := c.do(MethodCount, UserParams{User: user}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Counts lists every user's count, highest first.
func (c *Client) Counts() (*CountsResult, error) {
	var result CountsResult
	if err := c.do(MethodCounts, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset clears user's count.
func (c *Client) Reset(user string) error {
	return c.do(MethodReset, UserParams{User: user}, nil)
}

// Reload makes the daemon re-read its config file.
func (c *Client) Reload() (*ReloadResult, error) {
	var result ReloadResult
	if err := c.do(MethodReload, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health sends a health check request.
func (c *Client) Health() (*HealthResult, error) {
	var result HealthResult
	if err := c.do(MethodHealth, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Shutdown sends a shutdown request to the daemon.
func (c *Client) Shutdown() error {
	return c.do(MethodShutdown, nil, nil)
}

// Ping checks if the daemon is reachable.
func (c *Client) Ping() bool {
	conn, err := net.DialTimeout("unix", c.sockPath, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// do calls method and decodes the result into out when out is non-nil.
func (c *Client) do(method string, params, out interface{}) error {
	resp, err := c.call(Request{ID: uuid.NewString(), Method: method, Params: params})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	resultJSON, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := json.Unmarshal(resultJSON, out); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}

func (c *Client) call(req Request) (*Response, error) {
	return c.callWithTimeout(req, 5*time.Second)
}

func (c *Client) callWithTimeout(req Request, timeout time.Duration) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.sockPath, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(timeout))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		return nil, fmt.Errorf("empty response")
	}

	var resp Response
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("server error: %s", resp.Error)
	}
	if resp.ID != req.ID {
		return nil, fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	return &resp, nil
}
