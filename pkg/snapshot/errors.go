package snapshot

import "fmt"

// ErrorKind classifies build failures.
type ErrorKind int

const (
	// URLTooLong means the finished URL exceeded MaxURLLength.
	URLTooLong ErrorKind = iota + 1
	// MissingViewport means no viewport was supplied.
	MissingViewport
)

func (k ErrorKind) String() string {
	switch k {
	case URLTooLong:
		return "url too long"
	case MissingViewport:
		return "missing viewport"
	default:
		return "unknown"
	}
}

// BuildError is returned by Builder.BuildURL. No URL is returned with it.
type BuildError struct {
	Kind   ErrorKind
	Length int // URL length, set for URLTooLong
	Limit  int // length limit, set for URLTooLong
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Kind == URLTooLong {
		return fmt.Sprintf("snapshot: %s (%d > %d characters)", e.Kind, e.Length, e.Limit)
	}
	return fmt.Sprintf("snapshot: %s", e.Kind)
}

// Is matches any *BuildError of the same kind, so errors.Is works against
// the sentinels below.
func (e *BuildError) Is(target error) bool {
	t, ok := target.(*BuildError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrURLTooLong      = &BuildError{Kind: URLTooLong}
	ErrMissingViewport = &BuildError{Kind: MissingViewport}
)
