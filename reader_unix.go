//go:build unix

package termbg

import (
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// pollSlice bounds each poll so an abandoned reader notices and exits.
const pollSlice = 50 * time.Millisecond

// pollSource reads the terminal with poll(2) so that a reader that lost
// its race can be abandoned between reads. The abandon flag is checked
// under mu right before every read; once abandon returns, this source
// never consumes another byte.
type pollSource struct {
	fd int

	mu        sync.Mutex
	abandoned bool
}

func newInputSource(f *os.File) inputSource {
	return &pollSource{fd: int(f.Fd())}
}

func (s *pollSource) Read(p []byte) (int, error) {
	for {
		fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(pollSlice/time.Millisecond))
		if err != nil && err != unix.EINTR {
			return 0, err
		}

		s.mu.Lock()
		if s.abandoned {
			s.mu.Unlock()
			return 0, errAbandoned
		}
		if err == unix.EINTR || n == 0 {
			s.mu.Unlock()
			continue
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			s.mu.Unlock()
			// POLLHUP/POLLERR/POLLNVAL without data
			return 0, io.EOF
		}
		rn, err := unix.Read(s.fd, p)
		s.mu.Unlock()

		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, err
		}
		if rn == 0 {
			return 0, io.EOF
		}
		return rn, nil
	}
}

func (s *pollSource) Abandon() {
	s.mu.Lock()
	s.abandoned = true
	s.mu.Unlock()
}

// Drain discards input that is pending now or arrives within window.
// Best-effort; errors end the drain.
func (s *pollSource) Drain(window time.Duration) int {
	buf := make([]byte, 256)
	discarded := 0
	for {
		fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(window/time.Millisecond))
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			return discarded
		}
		rn, err := unix.Read(s.fd, buf)
		if err != nil || rn <= 0 {
			return discarded
		}
		discarded += rn
	}
}
