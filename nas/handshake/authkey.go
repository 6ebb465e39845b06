package handshake

import (
	"slices"
	"strings"
)

const (
	// ValueSep separates a field name from its value inside the auth key.
	ValueSep = `\`
	// FieldSep terminates every field except the trailing challenge.
	FieldSep = "|"
	// ChallengeField names the last auth key entry.
	ChallengeField = "challenge"
)

// AllowList holds the request fields copied into the auth key.
var AllowList = []string{"gsbrcd", "userid", "passwd", "devname", "ingamesn"}

// KnownFields are recognized protocol fields that are logged
// but never copied into the auth key.
var KnownFields = []string{
	"action", "sdkver", "bssid", "apinfo", "gamecd", "makercd",
	"unitcd", "macadr", "lang", "birth", "devtime",
}

// IsAllowed reports whether the named field goes into the auth key.
func IsAllowed(name string) bool {
	return slices.Contains(AllowList, name)
}

// AuthKey accumulates `name\value|` entries and is sealed with the challenge.
type AuthKey struct {
	sb strings.Builder
}

// Append adds one entry. Names and values are not checked for separators.
func (k *AuthKey) Append(name, value string) {
	k.sb.WriteString(name)
	k.sb.WriteString(ValueSep)
	k.sb.WriteString(value)
	k.sb.WriteString(FieldSep)
}

// AppendAllowed decodes and appends every allow-listed field of a source.
func (k *AuthKey) AppendAllowed(fields Fields) {
	for _, f := range fields {
		if IsAllowed(f.Name) {
			k.Append(f.Name, f.Decoded())
		}
	}
}

// Seal appends the challenge entry and returns the finished auth key.
func (k *AuthKey) Seal(challenge string) string {
	k.sb.WriteString(ChallengeField)
	k.sb.WriteString(ValueSep)
	k.sb.WriteString(challenge)
	return k.sb.String()
}

// ParseAuthKey splits an auth key back into its fields and challenge.
// Values are returned decoded. The challenge entry is not part of fields.
func ParseAuthKey(authKey string) (fields []Field, challenge string) {
	for _, entry := range strings.Split(authKey, FieldSep) {
		if entry == "" {
			continue
		}
		name, value, _ := strings.Cut(entry, ValueSep)
		if name == ChallengeField {
			challenge = value
			continue
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return
}
