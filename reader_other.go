//go:build !unix

package termbg

import (
	"os"
	"sync"
	"time"
)

// blockingSource is used where poll(2) is unavailable. A read in flight
// cannot be interrupted, so an abandoned reader is simply left blocked;
// whatever it eventually reads is dropped instead of being returned.
type blockingSource struct {
	f *os.File

	mu        sync.Mutex
	abandoned bool
}

func newInputSource(f *os.File) inputSource {
	return &blockingSource{f: f}
}

func (s *blockingSource) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.abandoned {
		return 0, errAbandoned
	}
	return n, err
}

func (s *blockingSource) Abandon() {
	s.mu.Lock()
	s.abandoned = true
	s.mu.Unlock()
}

// Drain is a no-op: without poll(2) there is no way to read only what is
// already pending.
func (s *blockingSource) Drain(time.Duration) int { return 0 }
