// Package loader opens and persists workbook documents. Plain .twb files are
// XML; .twbx packages are zip archives whose first .twb member is the
// document. Bytes move through viant/afs, so a workbook can be read from a
// local path or any afs-addressable URL.
package loader

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// ErrFileNotFound indicates the workbook location does not exist.
var ErrFileNotFound = errors.New("workbook not found")

// ErrInvalidFormat indicates the input is neither a workbook XML document nor
// a package archive containing one.
var ErrInvalidFormat = errors.New("invalid workbook format")

var zipMagic = []byte("PK\x03\x04")

// Workbook is an opened document together with enough provenance to write it
// back, including the archive member name for packaged workbooks.
type Workbook struct {
	// Doc is the parsed document tree.
	Doc *xmltree.Document
	// Source is the location the workbook was opened from.
	Source string
	// Member is the document member name within a package archive, empty
	// for plain XML workbooks.
	Member string
}

// Open reads and parses a workbook from the given location.
func Open(ctx context.Context, location string) (*Workbook, error) {
	fs := afs.New()
	if ok, _ := fs.Exists(ctx, location); !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, location)
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, location, err)
	}

	if bytes.HasPrefix(data, zipMagic) {
		return openArchive(location, data)
	}

	doc, err := xmltree.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Workbook{Doc: doc, Source: location}, nil
}

// openArchive extracts and parses the document member of a package archive.
func openArchive(location string, data []byte) (*Workbook, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, location, err)
	}
	for _, f := range zr.File {
		if !strings.EqualFold(path.Ext(f.Name), ".twb") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, location, err)
		}
		doc, err := xmltree.Parse(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return &Workbook{Doc: doc, Source: location, Member: f.Name}, nil
	}
	return nil, fmt.Errorf("%w: %s: no document member in archive", ErrInvalidFormat, location)
}

// Save writes the workbook to the given location. A packaged workbook written
// to a package destination is re-archived with all non-document members of
// the source preserved; any other destination receives plain XML.
func (w *Workbook) Save(ctx context.Context, location string) error {
	fs := afs.New()

	if w.Member != "" && strings.EqualFold(path.Ext(location), ".twbx") {
		data, err := w.repack(ctx, fs)
		if err != nil {
			return err
		}
		return fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data))
	}

	var buf bytes.Buffer
	if err := w.Doc.Write(&buf); err != nil {
		return err
	}
	return fs.Upload(ctx, location, file.DefaultFileOsMode, &buf)
}

// repack rebuilds the source archive with the serialized document replacing
// the original document member.
func (w *Workbook) repack(ctx context.Context, fs afs.Service) ([]byte, error) {
	src, err := fs.DownloadWithURL(ctx, w.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileNotFound, w.Source, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, w.Source, err)
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		if f.Name == w.Member {
			continue
		}
		if err := copyMember(zw, f); err != nil {
			return nil, err
		}
	}
	dw, err := zw.Create(w.Member)
	if err != nil {
		return nil, err
	}
	if err := w.Doc.Write(dw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func copyMember(zw *zip.Writer, f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	dst, err := zw.Create(f.Name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, rc)
	return err
}
