package parser

import (
	"errors"
	"fmt"
)

// ErrMissingIdentity indicates a field node with neither name nor caption.
// The node is skipped and reported as a diagnostic, never fatal.
var ErrMissingIdentity = errors.New("field node has neither name nor caption")

// ErrAmbiguousDatasource indicates one datasource token mapped to two
// different captions. Directory construction fails; no partial directory is
// returned.
var ErrAmbiguousDatasource = errors.New("ambiguous datasource reference")

// ErrUnresolvedDatasource indicates a worksheet referenced a datasource token
// absent from its directory. Fatal to that worksheet's extraction only.
var ErrUnresolvedDatasource = errors.New("unresolved datasource token")

// AmbiguityError reports the conflicting captions seen for one token.
type AmbiguityError struct {
	Token    string
	Captions [2]string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous datasource reference: token %q maps to both %q and %q",
		e.Token, e.Captions[0], e.Captions[1])
}

func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguousDatasource
}

// WorksheetError wraps a failure scoped to a single worksheet's extraction.
type WorksheetError struct {
	Worksheet string
	Err       error
}

func (e *WorksheetError) Error() string {
	return fmt.Sprintf("worksheet %q: %v", e.Worksheet, e.Err)
}

func (e *WorksheetError) Unwrap() error {
	return e.Err
}
