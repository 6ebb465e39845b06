package handshake

import "math/rand/v2"

// ChallengeAlphabet is the symbol set of challenges.
const ChallengeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ChallengeLength is the length of a login challenge.
const ChallengeLength = 8

// RandomChallenge returns n symbols of ChallengeAlphabet from a
// non-cryptographic source.
func RandomChallenge(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ChallengeAlphabet[rand.IntN(len(ChallengeAlphabet))]
	}
	return string(b)
}

// IsChallenge reports whether s is a well-formed login challenge.
func IsChallenge(s string) bool {
	if len(s) != ChallengeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
