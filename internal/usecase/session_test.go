package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarensabesk/HireAI/internal/domain"
)

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()
	s := NewSessionService()

	_, ok := s.Get()
	assert.False(t, ok)
	assert.False(t, s.Clear())

	s.Set(domain.Resume{Filename: "a.pdf", Text: "first", UploadedAt: time.Now()})
	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "a.pdf", got.Filename)

	// upload replaces wholesale
	s.Set(domain.Resume{Filename: "b.pdf", Text: "second"})
	got, ok = s.Get()
	require.True(t, ok)
	assert.Equal(t, "b.pdf", got.Filename)
	assert.Equal(t, "second", got.Text)

	assert.True(t, s.Clear())
	_, ok = s.Get()
	assert.False(t, ok)
}
