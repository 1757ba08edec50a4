package termbg

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// drainWindow is how long release waits for stragglers after a query
// that did not see its terminator.
const drainWindow = 20 * time.Millisecond

var errAbandoned = errors.New("read abandoned")

// inputSource is the terminal input as seen by a single query.
type inputSource interface {
	// Read returns errAbandoned once Abandon has been called.
	Read(p []byte) (int, error)
	Abandon()
	Drain(window time.Duration) int
}

// sessionMu serializes raw-mode sessions across the process.
var sessionMu sync.Mutex

// session holds the terminal in raw mode for the duration of one query.
// Always pair acquire with a deferred release.
type session struct {
	in    *os.File
	out   *os.File
	fd    int
	state *term.State
	src   inputSource
	log   *slog.Logger

	// clean is set once the query consumed its terminator reply.
	clean    bool
	released bool
}

func acquire(in, out *os.File, log *slog.Logger) (*session, error) {
	if in == nil || out == nil || !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return nil, newError(KindNotATerminal, "acquire", nil)
	}

	sessionMu.Lock()
	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		sessionMu.Unlock()
		return nil, newError(KindIO, "enter raw mode", err)
	}
	s := &session{
		in:    in,
		out:   out,
		fd:    fd,
		state: state,
		src:   newInputSource(in),
		log:   log,
	}
	if n := s.src.Drain(0); n > 0 {
		log.Debug("discarded pending input", "bytes", n)
	}
	log.Debug("raw mode enabled", "fd", fd)
	return s, nil
}

// release restores the recorded terminal mode. It is safe to call more
// than once; only the first call does anything.
func (s *session) release() error {
	if s == nil || s.released {
		return nil
	}
	s.released = true
	defer sessionMu.Unlock()

	s.src.Abandon()
	window := drainWindow
	if s.clean {
		window = 0
	}
	if n := s.src.Drain(window); n > 0 {
		s.log.Debug("discarded late input", "bytes", n)
	}
	if err := term.Restore(s.fd, s.state); err != nil {
		s.log.Debug("failed to restore terminal mode", "fd", s.fd, "err", err)
		return newError(KindRestore, "release", err)
	}
	s.log.Debug("terminal mode restored", "fd", s.fd)
	return nil
}
