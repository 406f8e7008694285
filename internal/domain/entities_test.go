package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarensabesk/HireAI/internal/domain"
)

func TestSentinelsAreDistinct(t *testing.T) {
	t.Parallel()
	sentinels := []error{
		domain.ErrInvalidArgument,
		domain.ErrNotFound,
		domain.ErrUpstreamTimeout,
		domain.ErrSchemaInvalid,
		domain.ErrInternal,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestWrappedSentinelUnwraps(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("op=analyze: %w", domain.ErrInvalidArgument)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestAnalysisFailed(t *testing.T) {
	t.Parallel()
	assert.False(t, domain.Analysis{Score: 42}.Failed())
	assert.True(t, domain.Analysis{Score: 0, Error: "job description too short"}.Failed())
}
