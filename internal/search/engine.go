// Package search drives incremental, paged catalog searches.
//
// An Engine owns one Session. Every request is tagged with the generation and
// offset it was issued for; a response is applied only if the session is
// still on that generation and still expects that offset. Starting a new
// query bumps the generation, so late pages of an older query are dropped.
package search

import (
	"context"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// FailedMessage is the error shown to the user when a page cannot be loaded.
const FailedMessage = "Failed to fetch books. Please try again."

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Session is a snapshot of the engine's current search.
type Session struct {
	Query      string
	Results    []entities.CatalogItem
	TotalItems int
	NextOffset int
	HasMore    bool
	Loading    bool
	Err        string
	State      State
}

// RecentSearchRecorder receives every query that starts a new search.
type RecentSearchRecorder interface {
	AddRecentSearch(query string)
}

type Options struct {
	PageSize int
	OrderBy  catalog.OrderBy
}

type Engine struct {
	searcher catalog.Searcher
	recorder RecentSearchRecorder
	opts     Options

	mu         sync.Mutex
	generation uint64
	session    Session
	observer   func(Session)
}

// NewEngine creates an engine. recorder may be nil.
func NewEngine(searcher catalog.Searcher, recorder RecentSearchRecorder, opts Options) *Engine {
	if opts.PageSize <= 0 {
		opts.PageSize = catalog.DefaultPageSize
	}
	if opts.OrderBy == "" {
		opts.OrderBy = catalog.OrderRelevance
	}
	return &Engine{
		searcher: searcher,
		recorder: recorder,
		opts:     opts,
		session:  Session{State: StateIdle, Results: []entities.CatalogItem{}},
	}
}

// SetObserver registers a callback invoked with a snapshot after every state
// change (optional). It is called without the engine lock held.
func (e *Engine) SetObserver(observer func(Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observer = observer
}

// Session returns a snapshot of the current search.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// Search fetches the next page of query and blocks until the response has
// been applied or discarded. With newSearch, or when query differs from the
// active one, the session is reset first; only newSearch records the query
// in the recent-search log. Blank queries are ignored.
func (e *Engine) Search(ctx context.Context, query string, newSearch bool) Session {
	if strings.TrimSpace(query) == "" {
		return e.Session()
	}

	e.mu.Lock()
	if newSearch || query != e.session.Query {
		e.generation++
		e.session = Session{
			Query:   query,
			Results: []entities.CatalogItem{},
		}
	}
	req := request{
		generation: e.generation,
		query:      query,
		offset:     e.session.NextOffset,
	}
	e.session.Loading = true
	e.session.Err = ""
	e.session.State = StateLoading
	snap, observer := e.snapshot(), e.observer
	e.mu.Unlock()

	if newSearch && e.recorder != nil {
		e.recorder.AddRecentSearch(query)
	}
	notify(observer, snap)

	page, err := e.searcher.Search(ctx, catalog.Query{
		Q:       req.query,
		Offset:  req.offset,
		Limit:   e.opts.PageSize,
		OrderBy: e.opts.OrderBy,
	})

	return e.apply(req, page, err)
}

// LoadMore requests the page after the last one loaded. It does nothing while
// a page is loading, when there are no more results, or before any search.
func (e *Engine) LoadMore(ctx context.Context) Session {
	e.mu.Lock()
	session := e.session
	e.mu.Unlock()

	if session.Loading || !session.HasMore || session.Query == "" {
		return e.Session()
	}
	return e.Search(ctx, session.Query, false)
}

// Reset returns the engine to idle. Responses still in flight are discarded.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.generation++
	e.session = Session{State: StateIdle, Results: []entities.CatalogItem{}}
	snap, observer := e.snapshot(), e.observer
	e.mu.Unlock()

	notify(observer, snap)
}

type request struct {
	generation uint64
	query      string
	offset     int
}

func (e *Engine) apply(req request, page *catalog.Page, err error) Session {
	e.mu.Lock()

	if req.generation != e.generation || req.offset != e.session.NextOffset {
		log.Printf("Discarding stale page for %q at offset %d", req.query, req.offset)
		snap := e.snapshot()
		e.mu.Unlock()
		return snap
	}

	s := &e.session
	s.Loading = false

	if err != nil {
		log.Printf("Error in search for %q: %v", req.query, err)
		s.Err = FailedMessage
		s.State = StateFailed
	} else {
		if req.offset == 0 {
			s.Results = []entities.CatalogItem{}
		}
		s.Results = appendUnique(s.Results, page.Items)
		s.TotalItems = page.TotalItems
		s.NextOffset = req.offset + len(page.Items)
		s.HasMore = len(page.Items) > 0 && s.NextOffset < s.TotalItems
		s.State = StateReady
	}

	snap, observer := e.snapshot(), e.observer
	e.mu.Unlock()

	notify(observer, snap)
	return snap
}

// snapshot must be called with e.mu held.
func (e *Engine) snapshot() Session {
	snap := e.session
	snap.Results = slices.Clone(e.session.Results)
	if snap.Results == nil {
		snap.Results = []entities.CatalogItem{}
	}
	return snap
}

// appendUnique appends the items whose IDs are not already in results. The
// catalog occasionally repeats a volume on neighbouring pages.
func appendUnique(results, items []entities.CatalogItem) []entities.CatalogItem {
	seen := make(map[string]struct{}, len(results)+len(items))
	for _, item := range results {
		seen[item.ID] = struct{}{}
	}
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		results = append(results, item)
	}
	return results
}

func notify(observer func(Session), snap Session) {
	if observer != nil {
		observer(snap)
	}
}
