package phrase

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// suffixLen is the number of random characters appended to the prefix.
// Lowercase alphanumerics give 36^8 combinations, enough that a phrase will
// not collide with unrelated profile text.
const suffixLen = 8

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// New generates a challenge phrase of the form "<prefix>-<8 random chars>".
func New(prefix string) (string, error) {
	b := make([]byte, suffixLen)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("generate challenge phrase: %w", err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return prefix + "-" + string(b), nil
}
