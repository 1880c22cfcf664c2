package tagrelease

import "fmt"

// ErrorKind classifies a release failure by the step that produced it.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "not found"
	KindMalformed    ErrorKind = "malformed"
	KindValidation   ErrorKind = "validation"
	KindWrite        ErrorKind = "write"
	KindGitOperation ErrorKind = "git operation"
	KindGitPush      ErrorKind = "git push"
	KindGitRevert    ErrorKind = "git revert"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its kind.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrMalformed    = &Error{Kind: KindMalformed}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrWrite        = &Error{Kind: KindWrite}
	ErrGitOperation = &Error{Kind: KindGitOperation}
	ErrGitPush      = &Error{Kind: KindGitPush}
	ErrGitRevert    = &Error{Kind: KindGitRevert}
)

// Error is returned by every step of the release pipeline.
type Error struct {
	Kind ErrorKind
	Op   string // step or command, e.g. "read metadata", "git tag"
	Path string // file involved, if any
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if msg == "" {
		msg = string(e.Kind) + " error"
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Path == "" && t.Err == nil && t.Kind == e.Kind
}

// Prefix returns the human-readable label the CLI prints before the message.
func (k ErrorKind) Prefix() string {
	switch k {
	case KindNotFound:
		return "version not found"
	case KindMalformed:
		return "malformed metadata"
	case KindValidation:
		return "invalid version"
	case KindWrite:
		return "could not write metadata"
	case KindGitOperation:
		return "git commit/tag failed"
	case KindGitPush:
		return "git push failed"
	case KindGitRevert:
		return "git revert failed"
	default:
		return "error"
	}
}

func newError(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func errorf(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}
