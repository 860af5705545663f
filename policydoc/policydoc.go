// Package policydoc serves the text of the company policy document.
//
// The document lives at a path fixed when the Resource is built. Each Read
// loads the file again and runs a fresh extraction; nothing is cached, so an
// unchanged file always yields the same text.
package policydoc

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lvillar/policymcp"
	"github.com/lvillar/policymcp/internal/logger"
)

// Resource reads and extracts the policy document.
type Resource struct {
	path   string
	engine Engine
	log    *logger.Logger
}

// Option configures a Resource.
type Option func(*Resource)

// WithEngine replaces the default PDF engine.
func WithEngine(e Engine) Option {
	return func(r *Resource) {
		r.engine = e
	}
}

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(r *Resource) {
		r.log = l
	}
}

// New returns a Resource for the document at path.
func New(path string, opts ...Option) *Resource {
	r := &Resource{
		path:   path,
		engine: PDFEngine{},
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the configured document location.
func (r *Resource) Path() string {
	return r.path
}

// Check verifies that the document exists, is a regular file and can be
// opened for reading. It is meant to run once at startup.
func (r *Resource) Check() error {
	info, err := os.Stat(r.path)
	if err != nil {
		return policymcp.DocumentReadError("policydoc.Check", err)
	}
	if !info.Mode().IsRegular() {
		return policymcp.DocumentReadError("policydoc.Check",
			fmt.Errorf("%s is not a regular file", r.path))
	}
	f, err := os.Open(r.path)
	if err != nil {
		return policymcp.DocumentReadError("policydoc.Check", err)
	}
	return f.Close()
}

// Read returns the full extracted text of the document. A missing or
// unreadable file yields policymcp.ErrDocumentRead; content the engine cannot
// parse yields policymcp.ErrExtraction.
func (r *Resource) Read(_ context.Context) (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return "", policymcp.DocumentReadError("policydoc.Read", err)
	}

	text, err := r.extract(data)
	if err != nil {
		return "", policymcp.ExtractionError("policydoc.Read", err)
	}
	return text, nil
}

// extract runs one engine session over data. The session is closed on every
// path out, including a panic inside the engine, which becomes an error.
func (r *Resource) extract(data []byte) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("policydoc: engine panic: %v", p)
		}
	}()

	sess, err := r.engine.Open(data)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && !errors.Is(cerr, errSessionClosed) {
			r.log.Error("closing extraction session", cerr)
		}
	}()

	return sess.Text()
}
