package lookup

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultDebounce matches the entry form: wait for the typist to pause
	// before hitting the directory.
	DefaultDebounce = 500 * time.Millisecond
	// MinDocumentoLen is the shortest document number worth searching.
	MinDocumentoLen = 8
)

// LookupFunc resolves a document number into pre-fill data.
type LookupFunc func(ctx context.Context, numeroDocumento string) Result

// Searcher debounces document-number input and guards against out-of-order
// completions: a lookup result is applied only if its input is still the
// latest one, so a stale response can never overwrite newer input
// (last-write-wins). Superseding input cancels the in-flight context.
type Searcher struct {
	lookup  LookupFunc
	apply   func(Result)
	delay   time.Duration
	minLen  int
	timeout time.Duration

	mu     sync.Mutex
	gen    uint64
	latest string
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewSearcher(lookup LookupFunc, apply func(Result)) *Searcher {
	return &Searcher{
		lookup:  lookup,
		apply:   apply,
		delay:   DefaultDebounce,
		minLen:  MinDocumentoLen,
		timeout: defaultTimeout,
	}
}

// Input registers a keystroke's worth of document number. Each call
// supersedes any pending or in-flight lookup.
func (s *Searcher) Input(numeroDocumento string) {
	numeroDocumento = strings.TrimSpace(numeroDocumento)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen
	s.latest = numeroDocumento

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if len(numeroDocumento) < s.minLen {
		return
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.run(gen, numeroDocumento)
	})
}

func (s *Searcher) run(gen uint64, numeroDocumento string) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	s.cancel = cancel
	s.mu.Unlock()

	res := s.lookup(ctx, numeroDocumento)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	// Stale completions must not touch the form: the searched value has to
	// still be the current input.
	if gen != s.gen || numeroDocumento != s.latest {
		return
	}
	s.cancel = nil
	s.apply(res)
}

// Close drops any pending lookup and invalidates in-flight ones.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
