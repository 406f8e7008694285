package textextractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarensabesk/HireAI/internal/domain"
)

func TestExtractPlainText(t *testing.T) {
	t.Parallel()
	e := New()
	out, err := e.Extract(context.Background(), "resume.txt", []byte("Senior engineer\nPython, Go, Kubernetes"))
	require.NoError(t, err)
	assert.Contains(t, out, "Senior engineer")
	assert.Contains(t, out, "Kubernetes")
}

func TestExtractEmptyFile(t *testing.T) {
	t.Parallel()
	e := New()
	_, err := e.Extract(context.Background(), "resume.txt", nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestExtractUnsupportedType(t *testing.T) {
	t.Parallel()
	e := New()
	// PNG magic bytes
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	_, err := e.Extract(context.Background(), "resume.png", png)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestExtractCorruptPDF(t *testing.T) {
	t.Parallel()
	e := New()
	// valid PDF header, truncated body
	_, err := e.Extract(context.Background(), "resume.pdf", []byte("%PDF-1.4 broken"))
	require.Error(t, err)
}

func TestExtractStripsPrivateUseRunes(t *testing.T) {
	t.Parallel()
	e := New()
	out, err := e.Extract(context.Background(), "resume.txt", []byte("Python  Go"))
	require.NoError(t, err)
	assert.Equal(t, "Python Go", out)
}
