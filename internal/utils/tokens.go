package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// NewResetToken returns a hex-encoded opaque token with nBytes of
// entropy (256 bits by default).
func NewResetToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewVerificationCode returns a uniformly random, zero-padded 6-digit
// decimal code from crypto/rand. Rejection sampling keeps the
// distribution uniform over 000000-999999.
func NewVerificationCode() (string, error) {
	const limit = 1000000
	// largest multiple of limit below 2^32
	const max = (1 << 32) / limit * limit
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return "", err
		}
		n := binary.BigEndian.Uint32(buf[:])
		if n < max {
			return fmt.Sprintf("%06d", n%limit), nil
		}
	}
}

// ConstantTimeEquals compares two tokens without leaking the position of
// the first mismatch.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
