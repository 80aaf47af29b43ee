// Package pdftext extracts plain text from uploaded PDF documents.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoTextContent indicates a PDF with no extractable text, typically
// a scanned or image-only document.
var ErrNoTextContent = errors.New("no extractable text content")

// MaxFileSize is the upload cap for PDF files.
const MaxFileSize = 10 * 1024 * 1024

// Document is the extraction result.
type Document struct {
	Text      string
	PageCount int
}

// Extract parses a PDF and returns its plain text and page count.
func Extract(r io.ReaderAt, size int64) (doc *Document, err error) {
	// The parser panics on some malformed font tables; report those as
	// parse errors instead of crashing the request.
	defer func() {
		if p := recover(); p != nil {
			doc = nil
			err = fmt.Errorf("pdf parse: %v", p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return nil, ErrNoTextContent
	}

	return &Document{Text: text, PageCount: reader.NumPage()}, nil
}
