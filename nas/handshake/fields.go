package handshake

import (
	"cmp"
	"fmt"
	"net/url"
	"strings"

	"github.com/dwc-revival/nasd/nas/codec"
)

// Field is one name/value pair of a request source. Value is codec-encoded.
type Field struct {
	Name  string
	Value string
}

// Decoded returns the decoded value of the field.
func (f Field) Decoded() string {
	return codec.DecodeString(f.Value)
}

// Fields is one request source (POST body or GET query) in arrival order.
type Fields []Field

// ParseFields parses a form-encoded string keeping first-seen order.
// A name repeated within the same source keeps its first position
// and takes its last value. Malformed pairs are skipped; the first such
// problem is returned along with everything that did parse.
func ParseFields(raw string) (fields Fields, err error) {
	index := make(map[string]int)

	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}

		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, e := url.QueryUnescape(rawName)
		if e != nil {
			err = cmp.Or(err, fmt.Errorf("invalid field name %q: %w", rawName, e))
			continue
		}
		value, e := url.QueryUnescape(rawValue)
		if e != nil {
			err = cmp.Or(err, fmt.Errorf("invalid value for field %q: %w", name, e))
			continue
		}

		if i, ok := index[name]; ok {
			fields[i].Value = value
			continue
		}
		index[name] = len(fields)
		fields = append(fields, Field{Name: name, Value: value})
	}

	return fields, err
}

// Get returns the encoded value of the named field.
func (fs Fields) Get(name string) (string, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Encode renders the fields back into a form-encoded string.
// The wire padding '*' is left unescaped like the console does.
func (fs Fields) Encode() string {
	var sb strings.Builder
	for i, f := range fs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(f.Name))
		sb.WriteByte('=')
		sb.WriteString(strings.ReplaceAll(url.QueryEscape(f.Value), "%2A", "*"))
	}
	return sb.String()
}

// EncodeFields builds a source from plain name/value pairs, encoding values.
func EncodeFields(pairs ...string) Fields {
	if len(pairs)%2 != 0 {
		panic("EncodeFields requires name/value pairs")
	}
	fs := make(Fields, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		fs = append(fs, Field{Name: pairs[i], Value: codec.EncodeString(pairs[i+1])})
	}
	return fs
}
