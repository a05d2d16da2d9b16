package lookup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultSink struct {
	mu      sync.Mutex
	results []Result
}

func (s *resultSink) apply(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, res)
}

func (s *resultSink) snapshot() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Result(nil), s.results...)
}

func newTestSearcher(lookup LookupFunc, sink *resultSink, delay time.Duration) *Searcher {
	s := NewSearcher(lookup, sink.apply)
	s.delay = delay
	return s
}

func TestSearcherIgnoresShortInput(t *testing.T) {
	var calls int
	sink := &resultSink{}
	s := newTestSearcher(func(ctx context.Context, doc string) Result {
		calls++
		return Result{NumeroDocumento: doc}
	}, sink, time.Millisecond)
	defer s.Close()

	s.Input("1234567") // one short of the minimum
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, calls)
	assert.Empty(t, sink.snapshot())
}

func TestSearcherCoalescesRapidInput(t *testing.T) {
	var mu sync.Mutex
	var searched []string
	sink := &resultSink{}
	s := newTestSearcher(func(ctx context.Context, doc string) Result {
		mu.Lock()
		searched = append(searched, doc)
		mu.Unlock()
		return Result{NumeroDocumento: doc, Encontrado: true}
	}, sink, 20*time.Millisecond)
	defer s.Close()

	// Keystrokes arrive faster than the debounce window.
	s.Input("12345678")
	s.Input("123456789")
	s.Input("1234567890")
	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, searched, 1)
	assert.Equal(t, "1234567890", searched[0])

	got := sink.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, "1234567890", got[0].NumeroDocumento)
}

func TestSearcherStaleCompletionNeverOverwritesNewerInput(t *testing.T) {
	sink := &resultSink{}
	s := newTestSearcher(func(ctx context.Context, doc string) Result {
		if doc == "11111111" {
			// Slow first lookup that completes after the second one.
			select {
			case <-time.After(80 * time.Millisecond):
			case <-ctx.Done():
			}
		}
		return Result{NumeroDocumento: doc, Encontrado: true}
	}, sink, time.Millisecond)
	defer s.Close()

	s.Input("11111111")
	time.Sleep(20 * time.Millisecond) // let the slow lookup start
	s.Input("22222222")
	time.Sleep(200 * time.Millisecond)

	got := sink.snapshot()
	require.Len(t, got, 1, "only the latest input's result may be applied")
	assert.Equal(t, "22222222", got[0].NumeroDocumento)
}

func TestSearcherCloseDropsPendingLookup(t *testing.T) {
	var calls int
	sink := &resultSink{}
	s := newTestSearcher(func(ctx context.Context, doc string) Result {
		calls++
		return Result{NumeroDocumento: doc}
	}, sink, 30*time.Millisecond)

	s.Input("12345678")
	s.Close()
	time.Sleep(100 * time.Millisecond)

	assert.Zero(t, calls)
	assert.Empty(t, sink.snapshot())
}
