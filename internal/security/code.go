package security

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin   = 100000
	codeRange = 900000
)

// GenerateVerificationCode returns a 6-digit numeric code drawn uniformly
// from [100000, 999999].
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
