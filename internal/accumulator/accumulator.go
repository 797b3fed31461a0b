// Package accumulator walks a paginated event search, keeping disaster
// events in first-seen order without duplicate ids.
package accumulator

import (
	"context"
	"errors"
	"log"
	"sync"

	"disasterwatch/internal/domain"
	"disasterwatch/internal/eventbus"
)

// ErrSuperseded is returned by a walk whose search was replaced by a newer one
var ErrSuperseded = errors.New("search superseded by a newer search")

// PageFetcher is the remote endpoint the accumulator reads from
type PageFetcher interface {
	FirstPageURL(term string) string
	FetchPage(ctx context.Context, pageURL string) (domain.Page, error)
}

// Accumulator owns the current search state. StartSearch drains every page;
// AdvancePage fetches one. At most one page request is in flight at a time.
type Accumulator struct {
	fetcher PageFetcher
	bus     eventbus.EventBus

	mu    sync.Mutex
	state State
}

// New creates an accumulator. bus may be nil.
func New(fetcher PageFetcher, bus eventbus.EventBus) *Accumulator {
	return &Accumulator{
		fetcher: fetcher,
		bus:     bus,
	}
}

// Snapshot returns the current state
func (a *Accumulator) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// StartSearch resets the results for term and follows continuations until
// the API reports none. An empty term is a no-op.
//
// There is no page cap: an endpoint that always returns a continuation keeps
// the walk going until ctx is cancelled. On failure the pages collected so
// far and the continuation that failed are kept, so AdvancePage can retry.
func (a *Accumulator) StartSearch(ctx context.Context, term string) error {
	if term == "" {
		return nil
	}

	a.mu.Lock()
	gen := a.state.Generation + 1
	a.state = State{
		Query:        term,
		Collected:    []domain.Event{},
		Continuation: a.fetcher.FirstPageURL(term),
		Loading:      true,
		Generation:   gen,
	}
	a.mu.Unlock()

	log.Printf("Search %d started: %q", gen, term)
	a.publish(eventbus.SearchStartedEvent{Query: term, Generation: gen})

	for {
		a.mu.Lock()
		if a.state.Generation != gen {
			a.mu.Unlock()
			return ErrSuperseded
		}
		// Always read the continuation from the state the last step produced
		cont := a.state.Continuation
		if cont == "" {
			a.state = a.state.withLoading(false)
			total := a.state.Len()
			a.mu.Unlock()

			log.Printf("Search %d completed: %d events", gen, total)
			a.publish(eventbus.SearchCompletedEvent{Query: term, Generation: gen, Total: total})
			return nil
		}
		a.mu.Unlock()

		var page domain.Page
		err := ctx.Err()
		if err == nil {
			page, err = a.fetcher.FetchPage(ctx, cont)
		}

		if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
			err = ctxErr
		}
		if !a.commit(ctx, gen, page, err, false) {
			return ErrSuperseded
		}
		if err != nil {
			return err
		}
	}
}

// AdvancePage fetches the page at the current continuation and appends its
// events. It is a no-op when there is no continuation or a request is
// already in flight. On failure the state is left as it was, apart from the
// error, and the call may be retried.
func (a *Accumulator) AdvancePage(ctx context.Context) error {
	a.mu.Lock()
	if a.state.Loading || !a.state.HasMore() {
		a.mu.Unlock()
		return nil
	}
	gen := a.state.Generation
	cont := a.state.Continuation
	a.state = a.state.withLoading(true)
	a.mu.Unlock()

	page, err := a.fetcher.FetchPage(ctx, cont)
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		err = ctxErr
	}

	if !a.commit(ctx, gen, page, err, true) {
		return ErrSuperseded
	}
	return err
}

// commit merges a fetch result into the state if gen is still current.
// done ends the request: Loading is cleared under the same lock, so a
// finished step can never touch a newer search's state. A result that
// failed because ctx was cancelled only stops the walk; it is not recorded
// as a fetch failure. commit reports false when the result belongs to a
// superseded search.
func (a *Accumulator) commit(ctx context.Context, gen uint64, page domain.Page, err error, done bool) bool {
	a.mu.Lock()
	if a.state.Generation != gen {
		a.mu.Unlock()
		log.Printf("Search %d: discarding result from superseded walk", gen)
		return false
	}

	query := a.state.Query
	if err != nil && ctx.Err() != nil {
		a.state = a.state.withLoading(false)
		a.mu.Unlock()

		log.Printf("Search %d cancelled: %v", gen, err)
		return true
	}
	if err != nil {
		a.state = a.state.withError(err)
		a.mu.Unlock()

		log.Printf("Search %d failed: %v", gen, err)
		a.publish(eventbus.SearchFailedEvent{Query: query, Generation: gen, Err: err})
		return true
	}

	before := a.state.Len()
	a.state = Apply(a.state, page)
	if done {
		a.state = a.state.withLoading(false)
	}
	total := a.state.Len()
	hasMore := a.state.HasMore()
	a.mu.Unlock()

	log.Printf("Search %d: page merged, %d of %d kept, %d total", gen, total-before, len(page.Items), total)
	a.publish(eventbus.PageLoadedEvent{
		Query:      query,
		Generation: gen,
		Added:      total - before,
		Total:      total,
		HasMore:    hasMore,
	})
	return true
}

func (a *Accumulator) publish(e eventbus.DomainEvent) {
	if a.bus != nil {
		a.bus.Publish(e)
	}
}
