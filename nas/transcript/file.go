package transcript

import (
	"context"
	"fmt"
	"os"
)

// FileSink appends record text to a file. The file is opened and closed
// on every append; nothing is held between requests.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) String() string {
	return fmt.Sprintf("transcript-file (%s)", s.path)
}

func (s *FileSink) Append(_ context.Context, rec Record) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("unable to open transcript file: %w", err)
	}
	defer f.Close()

	if _, err = f.WriteString(rec.Text); err != nil {
		return fmt.Errorf("unable to write transcript file: %w", err)
	}
	return f.Close()
}

func (s *FileSink) Close() error {
	return nil
}
