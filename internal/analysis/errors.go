package analysis

import "errors"

var ErrEmptyURL = errors.New("Please enter a valid URL.")

type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota
	KindUnsupportedSite
	KindFetchOrParse
	KindScoring
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnsupportedSite:
		return "unsupported_site"
	case KindFetchOrParse:
		return "fetch_or_parse"
	case KindScoring:
		return "scoring"
	default:
		return "unknown"
	}
}

// Error is terminal for the run that produced it. Its message is the
// underlying error text, unchanged, since that is what the user is shown.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of a pipeline error, or false if err did not come
// from the pipeline.
func KindOf(err error) (ErrorKind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}
