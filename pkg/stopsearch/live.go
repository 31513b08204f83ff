package stopsearch

import (
	"context"
	"sync"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/routebuilder"
	"github.com/rs/zerolog/log"
)

const DefaultDebounceDelay = 300 * time.Millisecond

// LiveResults is one batch of candidates delivered to a LiveSearch listener
type LiveResults struct {
	Sequence   uint64
	Query      string
	Candidates []routebuilder.StopCandidate
	Err        error
}

// LiveSearch runs searches as the user types.
// Keystrokes are debounced and every issued search gets a sequence number, a response is
// only delivered if no newer search was issued while it was in flight.
type LiveSearch struct {
	searcher Searcher
	mode     ctdf.TransportMode
	deliver  func(LiveResults)

	debouncer *Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mutex  sync.Mutex
	issued uint64
}

// NewLiveSearch creates a LiveSearch delivering results to deliver.
// deliver is called with the sequence lock held and must not call back into the LiveSearch.
func NewLiveSearch(searcher Searcher, mode ctdf.TransportMode, delay time.Duration, deliver func(LiveResults)) *LiveSearch {
	ctx, cancel := context.WithCancel(context.Background())

	return &LiveSearch{
		searcher:  searcher,
		mode:      mode,
		deliver:   deliver,
		debouncer: NewDebouncer(delay),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Type records new search text. Empty text clears the results straight away.
func (l *LiveSearch) Type(text string) {
	query := NormaliseQuery(text)

	if query == "" {
		l.debouncer.Cancel()
		sequence := l.nextSequence()
		l.apply(LiveResults{Sequence: sequence, Candidates: []routebuilder.StopCandidate{}})
		return
	}

	// The sequence belongs to the keystroke, so a timer that already fired still loses to later text
	sequence := l.nextSequence()
	l.debouncer.Schedule(func() {
		l.run(sequence, query)
	})
}

func (l *LiveSearch) Close() {
	l.debouncer.Cancel()
	l.cancel()
}

func (l *LiveSearch) nextSequence() uint64 {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.issued++
	return l.issued
}

func (l *LiveSearch) latest() uint64 {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return l.issued
}

func (l *LiveSearch) run(sequence uint64, query string) {
	if sequence != l.latest() {
		return
	}

	candidates, err := Candidates(l.ctx, l.searcher, query, l.mode)

	l.apply(LiveResults{
		Sequence:   sequence,
		Query:      query,
		Candidates: candidates,
		Err:        err,
	})
}

func (l *LiveSearch) apply(results LiveResults) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if results.Sequence != l.issued {
		log.Debug().
			Uint64("sequence", results.Sequence).
			Uint64("latest", l.issued).
			Str("query", results.Query).
			Msg("Discarding stale stop search response")
		return
	}

	if l.ctx.Err() != nil {
		return
	}

	l.deliver(results)
}
