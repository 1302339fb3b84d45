package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File is the opaque handle produced for a multipart file part.
//
// The MIME type is taken from the part's Content-Type header; when the
// client did not declare one, the content is sniffed instead. The byte
// source is only read when Bytes or Open is called.
type File struct {
	// Name is the client-supplied filename.
	Name string

	// MIMEType is the declared (or sniffed) media type, e.g.
	// "image/png".
	MIMEType string

	// Size is the part's byte length.
	Size int64

	header *multipart.FileHeader
}

func newFile(header *multipart.FileHeader) (*File, error) {
	f := &File{
		Name:   header.Filename,
		Size:   header.Size,
		header: header,
	}

	if ct := header.Header.Get("Content-Type"); ct != "" {
		// Strip parameters such as "; charset=...".
		f.MIMEType = strings.TrimSpace(strings.Split(ct, ";")[0])
		return f, nil
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening uploaded file %q: %w", header.Filename, err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("sniffing uploaded file %q: %w", header.Filename, err)
	}
	f.MIMEType = mtype.String()

	return f, nil
}

// Open returns a fresh reader over the file content.
func (f *File) Open() (multipart.File, error) {
	return f.header.Open()
}

// Bytes reads the full file content.
func (f *File) Bytes() ([]byte, error) {
	src, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening uploaded file %q: %w", f.Name, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file %q: %w", f.Name, err)
	}
	return data, nil
}
