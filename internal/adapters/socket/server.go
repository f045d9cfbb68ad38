package socket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/corey/latebot/internal/logging"
)

// Handler carries out the requests the server receives.
// Thread safety is the implementor's responsibility.
type Handler interface {
	HandleMessage(user, text string) (MessageResult, error)
	Count(user string) (CountResult, error)
	Counts() (CountsResult, error)
	Reset(user string) error
	Reload() (ReloadResult, error)
	// MatcherInfo reports the loaded phrase count and scorer name.
	MatcherInfo() (phraseCount int, scorer string)
}

// Server is the daemon that listens on a Unix socket and serves chat messages.
type Server struct {
	handler  Handler
	listener net.Listener
	sockPath string
	started  time.Time

	done         chan struct{}
	shutdownCh   chan struct{} // closed when a remote shutdown request is received
	shutdownOnce sync.Once
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewServer creates a daemon server that dispatches to handler.
func NewServer(handler Handler, sockPath string) *Server {
	return &Server{
		handler:    handler,
		sockPath:   sockPath,
		done:       make(chan struct{}),
		shutdownCh: make(chan struct{}),
	}
}

// Start begins listening on the Unix socket. It handles stale sockets by
// attempting a connection first: if the connection fails, the stale socket
// is removed before binding.
func (s *Server) Start() error {
	if _, err := os.Stat(s.sockPath); err == nil {
		conn, err := net.DialTimeout("unix", s.sockPath, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return fmt.Errorf("daemon already running at %s", s.sockPath)
		}
		log := logging.GetLogger("socket")
		log.Debug().Str("path", s.sockPath).Msg("Removing stale socket")
		os.Remove(s.sockPath)
	}

	ln, err := net.Listen("unix", s.sockPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = ln
	s.started = time.Now()

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// Stop closes the listener, waits for open connections, and removes the
// socket file. A server that never bound leaves the path alone. Safe to
// call more than once.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener == nil {
			return
		}
		s.listener.Close()
		s.wg.Wait()
		os.Remove(s.sockPath)
	})
	return nil
}

// ShutdownCh returns a channel that is closed when a remote shutdown request
// is received. The daemon's main goroutine should select on this alongside
// OS signals.
func (s *Server) ShutdownCh() <-chan struct{} {
	return s.shutdownCh
}

// Addr returns the socket path the server is listening on.
func (s *Server) Addr() string {
	return s.sockPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				continue
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB max message

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(conn, Response{Error: "invalid request JSON"})
			continue
		}

		resp := s.handleRequest(req)
		s.writeResponse(conn, resp)

		if req.Method == MethodShutdown {
			s.shutdownOnce.Do(func() { close(s.shutdownCh) })
			return
		}
	}
}

func (s *Server) handleRequest(req Request) Response {
	switch req.Method {
	case MethodMessage:
		return s.handleMessage(req)
	case MethodCount:
		return s.handleCount(req)
	case MethodCounts:
		return s.handleCounts(req)
	case MethodReset:
		return s.handleReset(req)
	case MethodReload:
		return s.handleReload(req)
	case MethodHealth:
		return s.handleHealth(req)
	case MethodShutdown:
		return Response{ID: req.ID, Result: struct{}{}}
	default:
		return Response{ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// decodeParams re-marshals the generic params into dst.
func decodeParams(req Request, dst interface{}) error {
	paramsJSON, err := json.Marshal(req.Params)
	if err != nil {
		return err
	}
	return json.Unmarshal(paramsJSON, dst)
}

func (s *Server) handleMessage(req Request) Response {
	var params MessageParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid message params"}
	}
	if params.User == "" {
		return Response{ID: req.ID, Error: "message requires a user"}
	}

	result, err := s.handler.HandleMessage(params.User, params.Text)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) handleCount(req Request) Response {
	var params UserParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid count params"}
	}
	if params.User == "" {
		return Response{ID: req.ID, Error: "count requires a user"}
	}

	result, err := s.handler.Count(params.User)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) handleCounts(req Request) Response {
	result, err := s.handler.Counts()
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) handleReset(req Request) Response {
	var params UserParams
	if err := decodeParams(req, &params); err != nil {
		return Response{ID: req.ID, Error: "invalid reset params"}
	}
	if params.User == "" {
		return Response{ID: req.ID, Error: "reset requires a user"}
	}

	if err := s.handler.Reset(params.User); err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: struct{}{}}
}

func (s *Server) handleReload(req Request) Response {
	result, err := s.handler.Reload()
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) handleHealth(req Request) Response {
	phrases, scorer := s.handler.MatcherInfo()
	return Response{
		ID: req.ID,
		Result: HealthResult{
			Status:      "ok",
			PhraseCount: phrases,
			Scorer:      scorer,
			Uptime:      time.Since(s.started).Round(time.Second).String(),
		},
	}
}

func (s *Server) writeResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	data = append(data, '\n')
	conn.Write(data)
}
