package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// TokenTag prefixes the inner layer of every token.
const TokenTag = "NDS"

// ErrTokenTag is returned when a token does not carry TokenTag.
var ErrTokenTag = errors.New("token is missing the " + TokenTag + " tag")

// MakeToken wraps an auth key into a token:
// Encode(TokenTag + StdBase64(authKey)).
// The inner layer uses plain base64 with '=' padding, the outer layer is Encode.
func MakeToken(authKey []byte) string {
	return EncodeString(TokenTag + base64.StdEncoding.EncodeToString(authKey))
}

// ParseToken reverses MakeToken and returns the auth key.
func ParseToken(token string) ([]byte, error) {
	outer, err := DecodeStrict(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token encoding: %w", err)
	}

	inner, ok := strings.CutPrefix(string(outer), TokenTag)
	if !ok {
		return nil, ErrTokenTag
	}

	authKey, err := base64.StdEncoding.DecodeString(inner)
	if err != nil {
		return nil, fmt.Errorf("invalid token payload: %w", err)
	}
	return authKey, nil
}
