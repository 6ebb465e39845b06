// Package transcript records a human-readable copy of every request.
package transcript

import (
	"context"
	"strings"
	"time"

	"github.com/dwc-revival/nasd/nas/handshake"
	"github.com/dwc-revival/nasd/std/log"
)

// Record is one rendered request.
type Record struct {
	Time   time.Time `json:"time"`
	Remote string    `json:"remote"`
	Path   string    `json:"path"`
	Text   string    `json:"text"`
}

// Sink stores records. Implementations must be safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, rec Record) error
	Close() error
}

// Reader is implemented by sinks that can list what they stored.
type Reader interface {
	Records(ctx context.Context) ([]Record, error)
}

const crlf = "\r\n"

// Render renders POST then GET fields, one `name = encoded (decoded)` line
// per field, followed by blank separator lines.
func Render(post, get handshake.Fields) string {
	var sb strings.Builder
	renderSource(&sb, "POST", post)
	sb.WriteString(crlf)
	renderSource(&sb, "GET", get)
	sb.WriteString(crlf + crlf + crlf)
	return sb.String()
}

func renderSource(sb *strings.Builder, title string, fields handshake.Fields) {
	sb.WriteString(title + ":" + crlf)
	for _, f := range fields {
		sb.WriteString(f.Name)
		sb.WriteString(" = ")
		sb.WriteString(f.Value)
		sb.WriteString(" (")
		sb.WriteString(f.Decoded())
		sb.WriteString(")" + crlf)
	}
}

// Logger renders requests into a sink. Failures are logged and returned,
// but never stop a request from being answered.
type Logger struct {
	sink Sink
	now  func() time.Time
}

func NewLogger(sink Sink) *Logger {
	return &Logger{sink: sink, now: time.Now}
}

func (l *Logger) String() string {
	return "transcript"
}

// Log renders and stores one request.
func (l *Logger) Log(ctx context.Context, remote, path string, post, get handshake.Fields) error {
	rec := Record{
		Time:   l.now(),
		Remote: remote,
		Path:   path,
		Text:   Render(post, get),
	}
	if err := l.sink.Append(ctx, rec); err != nil {
		log.Warn(l, "Unable to write transcript", "remote", remote, "err", err)
		return err
	}
	log.Trace(l, "Transcript written", "remote", remote, "size", len(rec.Text))
	return nil
}

// Close closes the underlying sink.
func (l *Logger) Close() error {
	return l.sink.Close()
}

// discardSink drops every record.
type discardSink struct{}

func (discardSink) Append(context.Context, Record) error { return nil }
func (discardSink) Close() error                         { return nil }
