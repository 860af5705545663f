package policydoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/policymcp"
	"github.com/lvillar/policymcp/internal/samplepdf"
)

func writePolicy(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.pdf")
	require.NoError(t, samplepdf.WriteFile(path, samplepdf.CompanyPolicy()))
	return path
}

// fakeEngine records how sessions are opened and closed.
type fakeEngine struct {
	openErr  error
	text     string
	textErr  error
	panicMsg string

	opened int
	closed int
}

func (e *fakeEngine) Open([]byte) (Session, error) {
	if e.openErr != nil {
		return nil, e.openErr
	}
	e.opened++
	return &fakeSession{engine: e}, nil
}

type fakeSession struct {
	engine *fakeEngine
}

func (s *fakeSession) Text() (string, error) {
	if s.engine.panicMsg != "" {
		panic(s.engine.panicMsg)
	}
	return s.engine.text, s.engine.textErr
}

func (s *fakeSession) Close() error {
	s.engine.closed++
	return nil
}

func TestReadExtractsText(t *testing.T) {
	r := New(writePolicy(t))

	text, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Company Policy and Procedures")
	assert.Contains(t, text, "Working Hours")
}

func TestReadIsIdempotent(t *testing.T) {
	r := New(writePolicy(t))

	first, err := r.Read(context.Background())
	require.NoError(t, err)
	second, err := r.Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestReadMissingDocument(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "absent.pdf"))

	text, err := r.Read(context.Background())
	require.Error(t, err)
	assert.Empty(t, text)
	assert.ErrorIs(t, err, policymcp.ErrDocumentRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, policymcp.ErrExtraction)
}

func TestReadNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is plain text, not a PDF"), 0o644))

	_, err := New(path).Read(context.Background())
	assert.ErrorIs(t, err, policymcp.ErrExtraction)
}

func TestReadRereadsFileEachTime(t *testing.T) {
	path := writePolicy(t)
	r := New(path)

	_, err := r.Read(context.Background())
	require.NoError(t, err)

	require.NoError(t, samplepdf.WriteFile(path, samplepdf.Document{Title: "Revised Handbook"}))

	text, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Revised Handbook")
	assert.NotContains(t, text, "Working Hours")
}

func TestSessionClosedOnEveryPath(t *testing.T) {
	tests := []struct {
		name    string
		engine  *fakeEngine
		wantErr bool
	}{
		{name: "success", engine: &fakeEngine{text: "policy"}},
		{name: "text error", engine: &fakeEngine{textErr: errors.New("bad stream")}, wantErr: true},
		{name: "engine panic", engine: &fakeEngine{panicMsg: "index out of range"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(writePolicy(t), WithEngine(tt.engine))

			text, err := r.Read(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, policymcp.ErrExtraction)
				assert.Empty(t, text)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "policy", text)
			}
			assert.Equal(t, 1, tt.engine.opened)
			assert.Equal(t, 1, tt.engine.closed)
		})
	}
}

func TestOpenFailureIsExtractionError(t *testing.T) {
	engine := &fakeEngine{openErr: errors.New("not a PDF file")}
	r := New(writePolicy(t), WithEngine(engine))

	_, err := r.Read(context.Background())
	assert.ErrorIs(t, err, policymcp.ErrExtraction)
	assert.Zero(t, engine.closed)
}

func TestPDFSessionClose(t *testing.T) {
	data, err := os.ReadFile(writePolicy(t))
	require.NoError(t, err)

	sess, err := PDFEngine{}.Open(data)
	require.NoError(t, err)
	require.NoError(t, sess.Close())

	_, err = sess.Text()
	assert.ErrorIs(t, err, errSessionClosed)
	assert.ErrorIs(t, sess.Close(), errSessionClosed)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, New(writePolicy(t)).Check())

	err := New(filepath.Join(t.TempDir(), "absent.pdf")).Check()
	assert.ErrorIs(t, err, policymcp.ErrDocumentRead)

	err = New(t.TempDir()).Check()
	assert.ErrorIs(t, err, policymcp.ErrDocumentRead)
}
