package policydoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Engine turns raw document bytes into an extraction session.
type Engine interface {
	Open(data []byte) (Session, error)
}

// Session holds the engine's working state for one document. Close must be
// called once the text has been collected, whatever the outcome.
type Session interface {
	Text() (string, error)
	Close() error
}

var errSessionClosed = errors.New("policydoc: session is closed")

// PDFEngine extracts text from PDF documents.
type PDFEngine struct{}

// Open parses the PDF cross-reference structure of data.
func (PDFEngine) Open(data []byte) (Session, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("policydoc: parsing pdf: %w", err)
	}
	return &pdfSession{reader: r}, nil
}

type pdfSession struct {
	reader *pdf.Reader
}

// Text returns the plain text of every page in page order.
func (s *pdfSession) Text() (string, error) {
	if s.reader == nil {
		return "", errSessionClosed
	}
	rd, err := s.reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("policydoc: extracting text: %w", err)
	}
	text, err := io.ReadAll(rd)
	if err != nil {
		return "", fmt.Errorf("policydoc: collecting text: %w", err)
	}
	return string(text), nil
}

// Close drops the parsed document so its buffers can be reclaimed.
func (s *pdfSession) Close() error {
	if s.reader == nil {
		return errSessionClosed
	}
	s.reader = nil
	return nil
}
