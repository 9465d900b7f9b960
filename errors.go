package textprep

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned when a representation cannot carry out an
	// operation, e.g. stripping HTML from a token list or mutating a file
	// backed document.
	ErrUnsupported = errors.New("operation not supported for document kind")

	// ErrNotImplemented is returned by part-of-speech tagging, which has no
	// tagger behind it.
	ErrNotImplemented = errors.New("not implemented")

	// ErrStaleIndex is returned when corpus statistics are requested after
	// documents changed and before the lexicon and inverse index were rebuilt.
	ErrStaleIndex = errors.New("corpus lexicon and inverse index are stale")

	ErrUnknownFlag     = errors.New("unknown flag")
	ErrUnknownLanguage = errors.New("unsupported language")
)

// OpError records the operation and document kind that failed.
type OpError struct {
	Op   Op
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s on %s document: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func unsupported(op Op, kind Kind) error {
	return &OpError{Op: op, Kind: kind, Err: ErrUnsupported}
}
