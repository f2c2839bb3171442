package fieldline

import (
	"github.com/fieldline/fieldline-go/pkg/fieldline/loader"
	"github.com/fieldline/fieldline-go/pkg/fieldline/parser"
	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// Error kinds of the analysis pipeline, re-exported so callers can match
// with errors.Is without importing the subpackages that raise them.
var (
	// ErrFileNotFound indicates the workbook location does not exist.
	ErrFileNotFound = loader.ErrFileNotFound
	// ErrInvalidFormat indicates the input is not a workbook document.
	ErrInvalidFormat = loader.ErrInvalidFormat
	// ErrMalformedDocument indicates the document tree could not be built;
	// fatal to the whole run.
	ErrMalformedDocument = xmltree.ErrMalformed
	// ErrMissingIdentity indicates a field node with neither name nor
	// caption; the node is skipped and recorded as a diagnostic.
	ErrMissingIdentity = parser.ErrMissingIdentity
	// ErrAmbiguousDatasource indicates one token with two captions; fatal to
	// directory construction.
	ErrAmbiguousDatasource = parser.ErrAmbiguousDatasource
	// ErrUnresolvedDatasource indicates a worksheet referenced an unknown
	// token; fatal to that worksheet only.
	ErrUnresolvedDatasource = parser.ErrUnresolvedDatasource
)
