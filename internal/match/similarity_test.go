package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioBounds(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("abc", ""))
	assert.Equal(t, 1.0, Ratio("kubernetes", "kubernetes"))
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
}

func TestRatioSymmetricEnough(t *testing.T) {
	t.Parallel()
	// common substring counting gives close values either way
	a, b := "postgres", "postgresql"
	require.InDelta(t, Ratio(a, b), Ratio(b, a), 0.0001)
}

func TestRatioKnownValues(t *testing.T) {
	t.Parallel()
	// 8 shared runes, lengths 8 and 10
	assert.InDelta(t, 2.0*8/18, Ratio("postgres", "postgresql"), 0.0001)
	// single-rune difference stays high
	assert.Greater(t, Ratio("javascript", "javascrip"), 0.9)
	assert.Less(t, Ratio("python", "java"), 0.4)
}

func TestRatioOrdering(t *testing.T) {
	t.Parallel()
	closer := Ratio("react", "reactjs")
	farther := Ratio("react", "redux")
	require.Greater(t, closer, farther)
}
