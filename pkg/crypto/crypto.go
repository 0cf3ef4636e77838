package crypto

import (
	"crypto/rand"
	"math/big"
)

// RandInt63n returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandInt63n(n int64) int64 {
	r, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		panic(err)
	}

	return r.Int64()
}
