package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandInt63n(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := RandInt63n(7)
		require.GreaterOrEqual(t, v, int64(0))
		require.Less(t, v, int64(7))
	}

	require.Panics(t, func() { RandInt63n(0) })
}
