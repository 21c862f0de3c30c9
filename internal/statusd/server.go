package statusd

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nerrad567/govee-watcher/internal/device"
	"github.com/nerrad567/govee-watcher/internal/govee"
	"github.com/nerrad567/govee-watcher/internal/metrics"
)

// maxLineBytes bounds a single command line. Real commands are tiny; the
// limit protects against a client streaming an endless line.
const maxLineBytes = 1024

// Logger defines the logging interface used by the Server.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Options configures the status server.
type Options struct {
	// Addr is the TCP listen address, host:port.
	Addr string

	// SingleDevice omits the address field from response lines. Only
	// meaningful when exactly one device is registered.
	SingleDevice bool
}

// Server serves the status protocol over TCP.
//
// Each accepted connection runs in its own goroutine; concurrent
// connections never serialize on each other, only on the store's read lock.
type Server struct {
	store  *device.Store
	opts   Options
	logger Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	closing  bool

	wg sync.WaitGroup
}

// New creates a status server reading from store.
func New(store *device.Store, opts Options) *Server {
	return &Server{
		store:  store,
		opts:   opts,
		logger: noopLogger{},
		conns:  make(map[net.Conn]struct{}),
	}
}

// SetLogger sets the logger for the server.
func (s *Server) SetLogger(logger Logger) {
	s.logger = logger
}

// Start binds the listen address and begins accepting connections.
//
// Returns:
//   - error: ErrAlreadyStarted, or the bind failure
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return ErrAlreadyStarted
	}

	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("statusd: listen on %s: %w", s.opts.Addr, err)
	}
	s.listener = listener
	s.closing = false

	s.wg.Add(1)
	go s.acceptLoop(listener)

	s.logger.Info("status server listening", "addr", listener.Addr().String())
	return nil
}

// Addr returns the bound listen address. Useful when Options.Addr requested
// an ephemeral port.
func (s *Server) Addr() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return "", ErrNotStarted
	}
	return s.listener.Addr().String(), nil
}

// Stop closes the listener and all open connections, then waits for the
// connection handlers to finish.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.listener == nil {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.closing = true
	err := s.listener.Close()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	s.listener = nil
	s.mu.Unlock()

	return err
}

// acceptLoop accepts connections until the listener is closed.
func (s *Server) acceptLoop(listener net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := listener.Accept()
		if err != nil {
			s.mu.Lock()
			closing := s.closing
			s.mu.Unlock()
			if closing || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Error("accept failed", "error", err)
			return
		}

		s.mu.Lock()
		if s.closing {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// handleConn serves one client until end-of-stream or a fault.
//
// End-of-stream is a clean close. Any other read fault, and any write
// fault, closes the connection immediately: a faulted connection is
// terminal and must never turn into a retry loop.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		_ = conn.Close()
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		metrics.OpenConnections.Dec()
		s.logger.Debug("connection closed", "remote", conn.RemoteAddr().String())
	}()

	metrics.OpenConnections.Inc()
	s.logger.Debug("connection opened", "remote", conn.RemoteAddr().String())

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, maxLineBytes), maxLineBytes)

	for scanner.Scan() {
		if err := s.dispatch(conn, scanner.Text()); err != nil {
			s.logger.Debug("write failed, dropping connection",
				"remote", conn.RemoteAddr().String(),
				"error", err,
			)
			return
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Debug("read failed, dropping connection",
			"remote", conn.RemoteAddr().String(),
			"error", err,
		)
	}
}

// dispatch parses one command line and writes the response.
//
// Malformed input writes nothing and is not an error; only write failures
// are returned, and they terminate the connection.
func (s *Server) dispatch(conn net.Conn, line string) error {
	command := strings.ToLower(strings.TrimSpace(line))

	switch {
	case command == "status":
		metrics.StatusRequests.WithLabelValues("all").Inc()
		return s.writeAll(conn)

	case strings.HasPrefix(command, "status "):
		address, err := govee.NormalizeAddress(strings.TrimPrefix(command, "status "))
		if err != nil {
			// Argument is not an address; same leniency as any other
			// malformed line.
			metrics.StatusRequests.WithLabelValues("malformed").Inc()
			return nil
		}
		metrics.StatusRequests.WithLabelValues("single").Inc()
		return s.writeOne(conn, address)

	default:
		metrics.StatusRequests.WithLabelValues("malformed").Inc()
		return nil
	}
}

// writeAll writes one line per store entry, flushing each line before the
// next is formatted. An empty store writes nothing.
func (s *Server) writeAll(conn net.Conn) error {
	for _, entry := range s.store.Snapshot() {
		if _, err := conn.Write([]byte(s.formatLine(entry.Address, entry.Reading))); err != nil {
			return err
		}
	}
	return nil
}

// writeOne writes the entry for address, or the not-found marker.
func (s *Server) writeOne(conn net.Conn, address string) error {
	reading, ok := s.store.Get(address)
	if !ok {
		_, err := conn.Write([]byte("?\n"))
		return err
	}
	_, err := conn.Write([]byte(s.formatLine(address, reading)))
	return err
}

// formatLine renders one reading as a protocol line.
func (s *Server) formatLine(address string, r govee.Reading) string {
	fields := make([]string, 0, 5)
	if !s.opts.SingleDevice {
		fields = append(fields, address)
	}
	fields = append(fields,
		strconv.FormatFloat(r.TemperatureCelsius, 'g', -1, 64),
		strconv.FormatFloat(r.RelativeHumidityPercent, 'g', -1, 64),
		strconv.Itoa(int(r.BatteryPercent)),
		r.ObservedAt.UTC().Format(time.RFC3339),
	)
	return strings.Join(fields, " ") + "\n"
}
