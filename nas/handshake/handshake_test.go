package handshake_test

import (
	"encoding/base64"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dwc-revival/nasd/nas/codec"
	"github.com/dwc-revival/nasd/nas/handshake"
	tu "github.com/dwc-revival/nasd/std/utils/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var challengeRe = regexp.MustCompile(`^[a-zA-Z0-9]{8}$`)

func fixedBuilder() *handshake.Builder {
	return &handshake.Builder{
		Now:       func() time.Time { return time.Date(2014, 5, 3, 7, 8, 9, 0, time.UTC) },
		Challenge: func() string { return "Ab3dEf7h" },
	}
}

func TestBuildAllowList(t *testing.T) {
	tu.SetT(t)

	post := handshake.EncodeFields(
		"gsbrcd", "ABCD",
		"userid", "bob",
		"action", "login",
	)
	resp := fixedBuilder().Build(post)

	require.Equal(t, `gsbrcd\ABCD|userid\bob|challenge\Ab3dEf7h`, resp.AuthKey)
	require.Equal(t, "Ab3dEf7h", resp.Challenge)
	require.Equal(t, "gamespy.com", resp.Locator)
	require.Equal(t, "0", resp.Retry)
	require.Equal(t, "001", resp.ReturnCode)
}

func TestBuildRandomChallenge(t *testing.T) {
	tu.SetT(t)

	b := &handshake.Builder{}
	post := handshake.EncodeFields("gsbrcd", "ABCD", "userid", "bob", "action", "login")
	resp := b.Build(post)

	require.Regexp(t, challengeRe, resp.Challenge)
	require.Equal(t, `gsbrcd\ABCD|userid\bob|challenge\`+resp.Challenge, resp.AuthKey)
}

func TestBuildEmpty(t *testing.T) {
	tu.SetT(t)

	resp := (&handshake.Builder{}).Build()
	require.Regexp(t, challengeRe, resp.Challenge)
	require.Equal(t, `challenge\`+resp.Challenge, resp.AuthKey)

	d := tu.NoErr(handshake.DecodeResponse(resp.String()))
	require.Equal(t, `challenge\`+resp.Challenge, d.AuthKey)
	require.Empty(t, d.AuthFields)
}

func TestBuildOrderAndSources(t *testing.T) {
	tu.SetT(t)

	post := handshake.EncodeFields(
		"ingamesn", "Player",
		"macadr", "0009bf112233",
		"userid", "1234567",
		"devname", "DS",
	)
	get := handshake.EncodeFields(
		"passwd", "secret",
		"lang", "01",
		"gsbrcd", "ADAJ",
	)
	resp := fixedBuilder().Build(post, get)

	require.Equal(t,
		`ingamesn\Player|userid\1234567|devname\DS|passwd\secret|gsbrcd\ADAJ|challenge\Ab3dEf7h`,
		resp.AuthKey)
}

func TestBuildKnownFieldsExcluded(t *testing.T) {
	tu.SetT(t)

	var pairs []string
	for _, name := range handshake.KnownFields {
		assert.False(t, handshake.IsAllowed(name), name)
		pairs = append(pairs, name, "x")
	}
	resp := fixedBuilder().Build(handshake.EncodeFields(pairs...))
	require.Equal(t, `challenge\Ab3dEf7h`, resp.AuthKey)
}

func TestResponseFields(t *testing.T) {
	tu.SetT(t)

	resp := fixedBuilder().Build(handshake.EncodeFields("userid", "bob"))
	line := resp.String()

	pairs := strings.Split(line, "&")
	require.Len(t, pairs, 6)

	names := []string{"challenge", "locator", "retry", "returncd", "token", "datetime"}
	for i, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		require.True(t, ok)
		require.Equal(t, names[i], name)
		require.NotContains(t, value, "=")
		require.True(t, codec.IsEncoded(value), value)
	}

	require.Equal(t, "challenge="+codec.EncodeString("Ab3dEf7h"), pairs[0])
	require.Equal(t, "locator=Z2FtZXNweS5jb20*", pairs[1])
	require.Equal(t, "retry=MA**", pairs[2])
	require.Equal(t, "returncd=MDAx", pairs[3])
	require.Equal(t, "datetime="+codec.EncodeString("20140503070809"), pairs[5])
}

func TestResponseToken(t *testing.T) {
	tu.SetT(t)

	resp := fixedBuilder().Build(handshake.EncodeFields("gsbrcd", "ABCD", "userid", "bob"))
	outer := codec.DecodeString(resp.Token())

	require.True(t, strings.HasPrefix(outer, "NDS"))
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte(resp.AuthKey)), outer[3:])
}

func TestDecodeResponse(t *testing.T) {
	tu.SetT(t)

	resp := fixedBuilder().Build(handshake.EncodeFields("gsbrcd", "ABCD", "userid", "bob", "devname", "DS Lite"))
	d := tu.NoErr(handshake.DecodeResponse(resp.String() + "\r\n"))

	require.Equal(t, "Ab3dEf7h", d.Get("challenge"))
	require.Equal(t, "gamespy.com", d.Get("locator"))
	require.Equal(t, "001", d.Get("returncd"))
	require.Equal(t, "20140503070809", d.Get("datetime"))
	require.Equal(t, "Ab3dEf7h", d.Challenge)
	require.Equal(t, []handshake.Field{
		{Name: "gsbrcd", Value: "ABCD"},
		{Name: "userid", Value: "bob"},
		{Name: "devname", Value: "DS Lite"},
	}, d.AuthFields)

	tu.Err(handshake.DecodeResponse("token=" + codec.EncodeString("nope")))
}

func TestLocatorOverride(t *testing.T) {
	tu.SetT(t)

	b := fixedBuilder()
	b.Locator = "example.net"
	require.Equal(t, "example.net", b.Build().Locator)
}

func TestFormatDatetime(t *testing.T) {
	tu.SetT(t)

	require.Equal(t, "20010203040506", handshake.FormatDatetime(time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)))
}

func TestBuildWordFilter(t *testing.T) {
	tu.SetT(t)

	ret := fixedBuilder().BuildWordFilter(handshake.EncodeFields("words", "foo\tbar\tbaz"))
	require.Len(t, ret, 9)

	for _, f := range ret[:7] {
		require.True(t, strings.HasPrefix(f.Name, "prwords"))
		require.Equal(t, "000", f.Decoded())
	}
	require.Equal(t, "prwordsP", ret[6].Name)
	require.Equal(t, "000", ret[7].Decoded())
	require.Equal(t, "returncd", ret[7].Name)
	require.Equal(t, "20140503070809", ret[8].Decoded())

	ret = fixedBuilder().BuildWordFilter(nil)
	require.Equal(t, "", ret[0].Decoded())
}
