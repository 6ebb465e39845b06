package handshake

import (
	"fmt"
	"strings"
	"time"

	"github.com/dwc-revival/nasd/nas/codec"
)

// Response is a login answer. All values are raw; Fields encodes them.
type Response struct {
	Challenge  string
	AuthKey    string
	Locator    string
	Retry      string
	ReturnCode string
	Time       time.Time
}

// Token returns the encoded token carrying the auth key.
func (r *Response) Token() string {
	return codec.MakeToken([]byte(r.AuthKey))
}

// Fields returns the encoded response fields in wire order.
func (r *Response) Fields() Fields {
	return Fields{
		{Name: "challenge", Value: codec.EncodeString(r.Challenge)},
		{Name: "locator", Value: codec.EncodeString(r.Locator)},
		{Name: "retry", Value: codec.EncodeString(r.Retry)},
		{Name: "returncd", Value: codec.EncodeString(r.ReturnCode)},
		{Name: "token", Value: r.Token()},
		{Name: "datetime", Value: codec.EncodeString(FormatDatetime(r.Time))},
	}
}

// String returns the response body line.
func (r *Response) String() string {
	return r.Fields().Line()
}

// Line joins the fields as name=value pairs without escaping,
// which is how the service writes its bodies.
func (fs Fields) Line() string {
	var sb strings.Builder
	for i, f := range fs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(f.Name)
		sb.WriteByte('=')
		sb.WriteString(f.Value)
	}
	return sb.String()
}

// Decoded is a response body as seen by a client.
type Decoded struct {
	// Fields holds every body field with its decoded value, in order.
	Fields Fields
	// AuthKey is the content of the token, empty without a token.
	AuthKey string
	// AuthFields are the request fields recovered from the auth key.
	AuthFields []Field
	// Challenge is the challenge recovered from the auth key.
	Challenge string
}

// Get returns the decoded value of the named field.
func (d *Decoded) Get(name string) string {
	v, _ := d.Fields.Get(name)
	return v
}

// DecodeResponse decodes a response body line and opens its token.
func DecodeResponse(line string) (*Decoded, error) {
	d := &Decoded{}
	line = strings.TrimRight(line, "\r\n")

	var token string
	for _, pair := range strings.Split(line, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		if name == "token" {
			token = value
		}
		d.Fields = append(d.Fields, Field{Name: name, Value: codec.DecodeString(value)})
	}

	if token != "" {
		authKey, err := codec.ParseToken(token)
		if err != nil {
			return nil, fmt.Errorf("unable to open token: %w", err)
		}
		d.AuthKey = string(authKey)
		d.AuthFields, d.Challenge = ParseAuthKey(d.AuthKey)
	}
	return d, nil
}
