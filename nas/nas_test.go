package nas_test

import (
	"context"
	"sync"

	"github.com/dwc-revival/nasd/nas/transcript"
)

type memorySink struct {
	mutex sync.Mutex
	recs  []transcript.Record
}

func (s *memorySink) Append(_ context.Context, rec transcript.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *memorySink) Close() error {
	return nil
}
