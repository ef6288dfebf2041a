// Package token generates the one-time numeric codes delivered by email for
// account confirmation and password resets.
package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Length is the number of digits in a generated code.
const Length = 6

var codeSpace = big.NewInt(1_000_000)

// Generate returns a uniform-random 6-digit numeric code, zero-padded.
// Uniqueness across users is not guaranteed.
func Generate() string {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		// rand.Int only fails if the OS entropy source is unavailable.
		panic(fmt.Sprintf("token: rand.Int failed: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64())
}
