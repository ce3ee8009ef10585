/*package server exposes named generator streams over the Redis protocol.

Any Redis client can open a stream and draw from it:

	> OPEN jobs pcg64_32 42
	OK
	> INTN jobs 6
	(integer) 3
	> STATE jobs
	"..."

Each stream is guarded by its own lock, so clients working on different
streams never wait for each other.*/
package server

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/match"
	"github.com/tidwall/redcon"
	"github.com/tidwall/tinybtree"

	"github.com/phil-mansfield/randlib/logging"
	"github.com/phil-mansfield/randlib/math/rand"
)

type stream struct {
	mu  sync.Mutex
	gen *rand.Generator
}

// Server holds the open streams.
type Server struct {
	mu      sync.RWMutex
	streams tinybtree.BTree
	ln      net.Listener
	rs      *redcon.Server
	closed  bool
}

// New returns a server with no open streams.
func New() *Server {
	return &Server{}
}

// Open adds gen to the server under name.
func (s *Server) Open(name string, gen *rand.Generator) error {
	return s.open(name, gen)
}

func (s *Server) open(name string, gen *rand.Generator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.streams.Get(name); ok {
		return ErrStreamExists
	}
	s.streams.Set(name, &stream{gen: gen})
	logging.Log().Debug().Str("stream", name).
		Str("family", gen.Family().String()).Msg("opened")
	return nil
}

func (s *Server) close(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.streams.Delete(name)
	if ok {
		logging.Log().Debug().Str("stream", name).Msg("closed")
	}
	return ok
}

func (s *Server) names(pattern string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	s.streams.Scan(func(name string, _ interface{}) bool {
		if match.Match(name, pattern) {
			out = append(out, name)
		}
		return true
	})
	return out
}

// with runs fn on the named stream while holding its lock.
func (s *Server) with(name string, fn func(gen *rand.Generator) error) error {
	s.mu.RLock()
	v, ok := s.streams.Get(name)
	s.mu.RUnlock()
	if !ok {
		return errUnknownStream(name)
	}
	st := v.(*stream)
	st.mu.Lock()
	defer st.mu.Unlock()
	return fn(st.gen)
}

// Len returns the number of open streams.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streams.Len()
}

// Exec runs a single command and returns its reply. The command name is
// matched without regard to case.
func (s *Server) Exec(args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, ErrSyntax
	}
	lower := make([]string, len(args))
	copy(lower, args)
	lower[0] = strings.ToLower(lower[0])
	cmd, err := lookupCommand(lower)
	if err != nil {
		return nil, err
	}
	return cmd.fn(s, lower)
}

func commandToArgs(cmd redcon.Command) []string {
	args := make([]string, len(cmd.Args))
	args[0] = strings.ToLower(string(cmd.Args[0]))
	for i := 1; i < len(cmd.Args); i++ {
		args[i] = string(cmd.Args[i])
	}
	return args
}

func (s *Server) execConn(conn redcon.Conn, args []string) (quit bool) {
	if args[0] == "quit" {
		conn.WriteString("OK")
		conn.Close()
		return true
	}

	start := time.Now()
	cmd, err := lookupCommand(args)
	var resp interface{}
	if err == nil {
		resp, err = cmd.fn(s, args)
	}
	if err != nil {
		conn.WriteError("ERR " + err.Error())
	} else {
		conn.WriteAny(resp)
	}

	logging.Log().Debug().Str("addr", conn.RemoteAddr()).
		Str("cmd", args[0]).Dur("elapsed", time.Since(start)).
		AnErr("err", err).Msg("exec")
	return false
}

// Serve accepts connections on ln until Close is called, then returns
// ErrClosed.
func (s *Server) Serve(ln net.Listener) error {
	rs := redcon.NewServerNetwork(ln.Addr().Network(), ln.Addr().String(),
		func(conn redcon.Conn, cmd redcon.Command) {
			if s.execConn(conn, commandToArgs(cmd)) {
				return
			}
			for _, cmd := range conn.ReadPipeline() {
				if s.execConn(conn, commandToArgs(cmd)) {
					return
				}
			}
		},
		func(conn redcon.Conn) bool {
			logging.Log().Debug().Str("addr", conn.RemoteAddr()).Msg("accepted")
			return true
		},
		func(conn redcon.Conn, err error) {
			logging.Log().Debug().Str("addr", conn.RemoteAddr()).
				AnErr("err", err).Msg("disconnected")
		},
	)
	// Close can run before rs has taken ln. The listener is then already
	// closed and Accept fails until rs is told to stop.
	rs.AcceptError = func(err error) {
		s.mu.RLock()
		closed := s.closed
		s.mu.RUnlock()
		if closed {
			rs.Close()
			return
		}
		logging.Log().Warn().Err(err).Msg("accept")
		time.Sleep(10 * time.Millisecond)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return ErrClosed
	}
	s.ln, s.rs = ln, rs
	s.mu.Unlock()

	logging.Log().Info().Str("addr", ln.Addr().String()).Msg("serving")
	err := rs.Serve(ln)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return err
}

// ListenAndServe listens on the TCP address addr and calls Serve.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Close stops Serve. Open streams are kept.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	if s.rs == nil {
		return nil
	}
	if err := s.rs.Close(); err != nil {
		// rs has not taken the listener yet.
		return s.ln.Close()
	}
	return nil
}
