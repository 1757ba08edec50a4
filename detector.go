package termbg

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/phyten/termbg/internal/termcolor"
)

var errConsoleUnavailable = errors.New("console color API unavailable")

// Detector runs background detection against a pair of terminal streams.
// The zero value is not usable; start from New and override fields.
type Detector struct {
	// In receives terminal replies; Out carries queries. Both must be
	// terminals for the escape-sequence path to run.
	In  *os.File
	Out *os.File
	// Env is the environment used to identify the terminal and for the
	// COLORFGBG fallback.
	Env map[string]string
	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger
}

// New returns a Detector bound to the process's stdin, stdout and
// environment.
func New() *Detector {
	return &Detector{
		In:  os.Stdin,
		Out: os.Stdout,
		Env: termcolor.EnvMap(os.Environ()),
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (d *Detector) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return discardLogger
}

func (d *Detector) interactive() bool {
	return termcolor.IsTerminal(d.In) && termcolor.IsTerminal(d.Out)
}

// Terminal identifies the terminal from the environment.
func (d *Detector) Terminal() Term {
	return identify(d.Env, d.interactive(), consoleOnly(d.Env))
}

// RGB detects the background color. Strategies run once each, most
// reliable first: the Windows console API, the OSC 11 query, then
// COLORFGBG. Redirected streams fail with ErrNotATerminal without
// writing anything. If the fallback has nothing either, the query's own
// error (for example ErrTimeout) is returned.
func (d *Detector) RGB(timeout time.Duration) (RGB, error) {
	log := d.logger()

	c, consoleErr := fromConsole(d.Out, d.Env)
	if consoleErr == nil {
		log.Debug("background from console", "color", c)
		return c, nil
	}
	if !errors.Is(consoleErr, errConsoleUnavailable) {
		log.Debug("console query failed", "err", consoleErr)
	}

	t := d.Terminal()
	log.Debug("terminal identified", "term", t)
	if !d.interactive() {
		return RGB{}, newError(KindNotATerminal, "detect", nil)
	}

	queryErr := unqueryable(t, consoleErr)
	if queryErr == nil {
		c, err := d.query(t, timeout)
		if err == nil {
			log.Debug("background from query", "color", c)
			return c, nil
		}
		if errors.Is(err, ErrRestore) {
			return RGB{}, err
		}
		queryErr = err
	}
	log.Debug("query failed, trying COLORFGBG", "err", queryErr)

	c, err := fromColorFGBG(d.Env)
	if err != nil {
		log.Debug("COLORFGBG fallback failed", "err", err)
		return RGB{}, queryErr
	}
	log.Debug("background from COLORFGBG", "color", c)
	return c, nil
}

// unqueryable explains why t must not be sent escape sequences, or
// returns nil if it can be. Emacs never answers; a console without VT
// processing would print them, so its own failure is reported instead.
func unqueryable(t Term, consoleErr error) error {
	switch t {
	case Emacs:
		return newError(KindUnsupported, "query", errors.New("emacs terminals do not answer color queries"))
	case WindowsConsole:
		if consoleErr != nil && !errors.Is(consoleErr, errConsoleUnavailable) {
			return consoleErr
		}
		return newError(KindUnsupported, "query", errors.New("console does not process escape sequences"))
	}
	return nil
}

func (d *Detector) query(t Term, timeout time.Duration) (c RGB, err error) {
	s, err := acquire(d.In, d.Out, d.logger())
	if err != nil {
		return RGB{}, err
	}
	defer func() {
		if rerr := s.release(); rerr != nil {
			c, err = RGB{}, errors.Join(err, rerr)
		}
	}()
	return s.queryBackground(t, timeout)
}

// Theme detects the background color and classifies it.
func (d *Detector) Theme(timeout time.Duration) (Theme, error) {
	c, err := d.RGB(timeout)
	if err != nil {
		return Dark, err
	}
	return Classify(c), nil
}

// Latency measures how long the terminal takes to answer a status
// report. Terminals that cannot be queried report zero.
func (d *Detector) Latency(timeout time.Duration) (lat time.Duration, err error) {
	switch d.Terminal() {
	case Emacs, WindowsConsole:
		return 0, nil
	}
	s, err := acquire(d.In, d.Out, d.logger())
	if err != nil {
		return 0, err
	}
	defer func() {
		if rerr := s.release(); rerr != nil {
			lat, err = 0, errors.Join(err, rerr)
		}
	}()
	return s.measureLatency(timeout)
}

// Terminal identifies the terminal attached to the process.
func Terminal() Term { return New().Terminal() }

// DetectRGB detects the background color of the process's terminal,
// waiting at most timeout for a reply.
func DetectRGB(timeout time.Duration) (RGB, error) { return New().RGB(timeout) }

// DetectTheme detects whether the process's terminal has a light or dark
// background.
func DetectTheme(timeout time.Duration) (Theme, error) { return New().Theme(timeout) }

// Latency measures the process's terminal round trip.
func Latency(timeout time.Duration) (time.Duration, error) { return New().Latency(timeout) }
