package handshake

import (
	"strings"
	"time"

	"github.com/dwc-revival/nasd/nas/codec"
)

const (
	// DefaultLocator is the locator returned to clients.
	DefaultLocator = "gamespy.com"
	// RetryNone tells the client not to retry.
	RetryNone = "0"
	// ReturnLoginOK is the return code of a successful login.
	ReturnLoginOK = "001"
	// ReturnWordsOK is the return code of a word filter query.
	ReturnWordsOK = "000"

	datetimeLayout = "20060102150405"
)

// wordFilterRegions suffix the per-region prwords fields.
const wordFilterRegions = "ACEJKP"

// Builder turns request sources into responses. It keeps no state between
// calls; the clock and the challenge source are its only inputs besides
// the request. Zero-value fields fall back to the wall clock, random
// challenges and DefaultLocator.
type Builder struct {
	Now       func() time.Time
	Challenge func() string
	Locator   string
}

func (b *Builder) String() string {
	return "nas-builder"
}

func (b *Builder) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Builder) challenge() string {
	if b.Challenge == nil {
		return RandomChallenge(ChallengeLength)
	}
	return b.Challenge()
}

func (b *Builder) locator() string {
	if b.Locator == "" {
		return DefaultLocator
	}
	return b.Locator
}

// Build answers a login. Allow-listed fields of every source are appended to
// the auth key in order, sources in the order given.
func (b *Builder) Build(sources ...Fields) *Response {
	var key AuthKey
	for _, src := range sources {
		key.AppendAllowed(src)
	}

	challenge := b.challenge()
	return &Response{
		Challenge:  challenge,
		AuthKey:    key.Seal(challenge),
		Locator:    b.locator(),
		Retry:      RetryNone,
		ReturnCode: ReturnLoginOK,
		Time:       b.now(),
	}
}

// BuildWordFilter answers a word filter query. Every word of the
// tab-separated "words" field passes in every region.
func (b *Builder) BuildWordFilter(fields Fields) Fields {
	count := 0
	if words, ok := fields.Get("words"); ok {
		count = len(strings.Split(codec.DecodeString(words), "\t"))
	}
	verdict := codec.EncodeString(strings.Repeat("0", count))

	ret := Fields{{Name: "prwords", Value: verdict}}
	for _, region := range wordFilterRegions {
		ret = append(ret, Field{Name: "prwords" + string(region), Value: verdict})
	}
	return append(ret,
		Field{Name: "returncd", Value: codec.EncodeString(ReturnWordsOK)},
		Field{Name: "datetime", Value: codec.EncodeString(FormatDatetime(b.now()))},
	)
}

// FormatDatetime formats t as YYYYMMDDHHMMSS.
func FormatDatetime(t time.Time) string {
	return t.Format(datetimeLayout)
}
