package errkind

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure by its caller-visible severity.
type Kind int

const (
	// NotFound means the origin image is unreachable or absent,
	// or a requested site/preset could not be resolved.
	NotFound Kind = iota + 1

	// Configuration means the setup is missing or invalid and an
	// operator has to act, not the end user.
	Configuration

	// Processing means the origin content was rejected or a
	// codec-level operation failed.
	Processing
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Configuration:
		return "configuration"
	case Processing:
		return "processing"
	default:
		return "unknown"
	}
}

// Error carries the failure kind, the pipeline stage that raised it
// and the underlying cause.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a tagged error with a plain message as cause.
func New(kind Kind, stage, message string) error {
	return &Error{kind, stage, errors.New(message)}
}

// Newf creates a tagged error with a formatted message as cause.
func Newf(kind Kind, stage, format string, args ...interface{}) error {
	return &Error{kind, stage, fmt.Errorf(format, args...)}
}

// Wrap tags an underlying error with a kind and stage. Wrapping nil
// returns nil. An already tagged error keeps its original kind and
// stage so no component can downgrade a lower layer's classification.
func Wrap(kind Kind, stage string, err error) error {
	if err == nil {
		return nil
	}

	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}

	return &Error{kind, stage, err}
}

// KindOf reports the kind of a tagged error, or 0 for untagged errors.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}

	return 0
}

// StageOf reports the stage of a tagged error, or "" for untagged errors.
func StageOf(err error) string {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Stage
	}

	return ""
}
