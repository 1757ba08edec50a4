package termbg

import (
	"errors"
	"strconv"
	"time"
)

// replyEvent is published by a reader goroutine. A reader sends at most
// two events (an interim color, then a final result) into a channel
// with room for both, so it never blocks on a caller that stopped
// listening.
type replyEvent struct {
	scan  replyScan
	final bool
	err   error
}

// queryBackground writes the OSC 11 query for t followed by the cursor
// report terminator, then races the reply against timeout.
func (s *session) queryBackground(t Term, timeout time.Duration) (RGB, error) {
	q := backgroundQuery(t)
	s.log.Debug("sending background query", "term", t, "query", strconv.Quote(string(q)))
	if _, err := s.out.Write(q); err != nil {
		return RGB{}, newError(KindIO, "write query", err)
	}

	events := make(chan replyEvent, 2)
	go collectBackground(s.src, t, events)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var interim replyScan
	for {
		select {
		case ev := <-events:
			if ev.err != nil {
				if interim.haveColor {
					return interim.color, nil
				}
				return RGB{}, ev.err
			}
			if !ev.final {
				interim = ev.scan
				continue
			}
			s.clean = true
			if ev.scan.colorErr != nil {
				return RGB{}, ev.scan.colorErr
			}
			return ev.scan.color, nil
		case <-timer.C:
			s.src.Abandon()
			if interim.haveColor {
				s.log.Debug("timed out waiting for terminator, using color reply", "color", interim.color)
				return interim.color, nil
			}
			return RGB{}, errorf(KindTimeout, "query", "no reply within %v", timeout)
		}
	}
}

func collectBackground(src inputSource, t Term, events chan<- replyEvent) {
	buf := make([]byte, 0, 64)
	chunk := make([]byte, 256)
	sentColor := false
	for {
		n, err := src.Read(chunk)
		if err != nil {
			if !errors.Is(err, errAbandoned) {
				events <- replyEvent{final: true, err: newError(KindIO, "read reply", err)}
			}
			return
		}
		buf = append(buf, chunk[:n]...)
		scan := scanReply(buf, t)
		if scan.terminated {
			events <- replyEvent{scan: scan, final: true}
			return
		}
		if scan.haveColor && !sentColor {
			sentColor = true
			events <- replyEvent{scan: scan}
		}
	}
}

// measureLatency times a DSR status round trip.
func (s *session) measureLatency(timeout time.Duration) (time.Duration, error) {
	start := time.Now()
	if _, err := s.out.Write([]byte(statusQuery)); err != nil {
		return 0, newError(KindIO, "write query", err)
	}

	done := make(chan error, 1)
	go func() {
		buf := make([]byte, 0, 16)
		chunk := make([]byte, 64)
		for {
			n, err := s.src.Read(chunk)
			if err != nil {
				if !errors.Is(err, errAbandoned) {
					done <- newError(KindIO, "read reply", err)
				}
				return
			}
			buf = append(buf, chunk[:n]...)
			if hasStatusReply(buf) {
				done <- nil
				return
			}
		}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil {
			return 0, err
		}
		s.clean = true
		elapsed := time.Since(start)
		s.log.Debug("status reply received", "latency", elapsed)
		return elapsed, nil
	case <-timer.C:
		s.src.Abandon()
		return 0, errorf(KindTimeout, "latency", "no reply within %v", timeout)
	}
}
