package termbg

import "fmt"

// ErrorKind classifies detection failures.
type ErrorKind int

// Error kinds, one per way detection can fail.
const (
	KindIO ErrorKind = iota
	KindNotATerminal
	KindTimeout
	KindUnrecognized
	KindUnsupported
	KindRestore
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "i/o error"
	case KindNotATerminal:
		return "not a terminal"
	case KindTimeout:
		return "timeout"
	case KindUnrecognized:
		return "unrecognized response"
	case KindUnsupported:
		return "unsupported"
	case KindRestore:
		return "terminal mode restore failed"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every detection operation.
// Compare against the Err* sentinels with errors.Is; the comparison
// matches on Kind only.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Sentinels for errors.Is; only their Kind is compared.
var (
	ErrIO           = &Error{Kind: KindIO}
	ErrNotATerminal = &Error{Kind: KindNotATerminal}
	ErrTimeout      = &Error{Kind: KindTimeout}
	ErrUnrecognized = &Error{Kind: KindUnrecognized}
	ErrUnsupported  = &Error{Kind: KindUnsupported}
	ErrRestore      = &Error{Kind: KindRestore}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func errorf(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
