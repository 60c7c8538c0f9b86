package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookfinder/internal/catalog"
	"github.com/mrlokans/bookfinder/internal/entities"
)

// pagedSearcher simulates a catalog holding total items per query.
type pagedSearcher struct {
	mu      sync.Mutex
	total   int
	fail    bool
	queries []catalog.Query
}

func (p *pagedSearcher) Search(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, q)

	if p.fail {
		return nil, fmt.Errorf("%w: unexpected status: 500", catalog.ErrFetchFailed)
	}

	items := []entities.CatalogItem{}
	for i := q.Offset; i < q.Offset+q.Limit && i < p.total; i++ {
		items = append(items, entities.CatalogItem{ID: fmt.Sprintf("%s-%d", q.Q, i)})
	}
	return &catalog.Page{TotalItems: p.total, Items: items}, nil
}

type mockRecorder struct {
	queries []string
}

func (m *mockRecorder) AddRecentSearch(query string) {
	m.queries = append(m.queries, query)
}

func TestSearch_FirstPage(t *testing.T) {
	searcher := &pagedSearcher{total: 45}
	recorder := &mockRecorder{}
	engine := NewEngine(searcher, recorder, Options{})

	session := engine.Search(context.Background(), "dune", true)

	assert.Equal(t, StateReady, session.State)
	assert.Equal(t, "dune", session.Query)
	assert.Len(t, session.Results, 20)
	assert.Equal(t, 45, session.TotalItems)
	assert.Equal(t, 20, session.NextOffset)
	assert.True(t, session.HasMore)
	assert.False(t, session.Loading)
	assert.Empty(t, session.Err)

	assert.Equal(t, []string{"dune"}, recorder.queries)
	require.Len(t, searcher.queries, 1)
	assert.Equal(t, catalog.Query{Q: "dune", Offset: 0, Limit: 20, OrderBy: catalog.OrderRelevance}, searcher.queries[0])
}

func TestLoadMore_Monotonic(t *testing.T) {
	searcher := &pagedSearcher{total: 45}
	recorder := &mockRecorder{}
	engine := NewEngine(searcher, recorder, Options{})

	var lengths []int
	var hasMore []bool

	session := engine.Search(context.Background(), "dune", true)
	lengths = append(lengths, len(session.Results))
	hasMore = append(hasMore, session.HasMore)

	for i := 0; i < 3; i++ {
		session = engine.LoadMore(context.Background())
		lengths = append(lengths, len(session.Results))
		hasMore = append(hasMore, session.HasMore)
	}

	assert.Equal(t, []int{20, 40, 45, 45}, lengths)
	assert.Equal(t, []bool{true, true, false, false}, hasMore)
	assert.Len(t, searcher.queries, 3, "the last LoadMore must not hit the catalog")
	assert.Equal(t, 20, searcher.queries[1].Offset)
	assert.Equal(t, 40, searcher.queries[2].Offset)

	assert.Equal(t, []string{"dune"}, recorder.queries, "continuations are not recorded")

	for i, item := range session.Results {
		assert.Equal(t, fmt.Sprintf("dune-%d", i), item.ID)
	}
}

func TestLoadMore_Ignored(t *testing.T) {
	t.Run("before any search", func(t *testing.T) {
		searcher := &pagedSearcher{total: 45}
		engine := NewEngine(searcher, nil, Options{})

		session := engine.LoadMore(context.Background())

		assert.Equal(t, StateIdle, session.State)
		assert.Empty(t, searcher.queries)
	})

	t.Run("when everything is loaded", func(t *testing.T) {
		searcher := &pagedSearcher{total: 5}
		engine := NewEngine(searcher, nil, Options{})

		engine.Search(context.Background(), "short", true)
		session := engine.LoadMore(context.Background())

		assert.Len(t, session.Results, 5)
		assert.Len(t, searcher.queries, 1)
	})
}

func TestSearch_BlankQueryIgnored(t *testing.T) {
	searcher := &pagedSearcher{total: 45}
	recorder := &mockRecorder{}
	engine := NewEngine(searcher, recorder, Options{})

	session := engine.Search(context.Background(), "   ", true)

	assert.Equal(t, StateIdle, session.State)
	assert.Empty(t, searcher.queries)
	assert.Empty(t, recorder.queries)
}

func TestSearch_NewSearchResets(t *testing.T) {
	searcher := &pagedSearcher{total: 45}
	engine := NewEngine(searcher, nil, Options{})

	engine.Search(context.Background(), "dune", true)
	engine.LoadMore(context.Background())

	session := engine.Search(context.Background(), "emma", true)

	assert.Equal(t, "emma", session.Query)
	assert.Len(t, session.Results, 20)
	assert.Equal(t, "emma-0", session.Results[0].ID)
	assert.Equal(t, 0, searcher.queries[2].Offset)
}

func TestSearch_SameQueryAgainStartsOver(t *testing.T) {
	searcher := &pagedSearcher{total: 45}
	recorder := &mockRecorder{}
	engine := NewEngine(searcher, recorder, Options{})

	engine.Search(context.Background(), "dune", true)
	engine.LoadMore(context.Background())
	session := engine.Search(context.Background(), "dune", true)

	assert.Len(t, session.Results, 20)
	assert.Equal(t, []string{"dune", "dune"}, recorder.queries)
}

func TestSearch_DifferentQueryWithoutNewSearchResets(t *testing.T) {
	searcher := &pagedSearcher{total: 45}
	recorder := &mockRecorder{}
	engine := NewEngine(searcher, recorder, Options{})

	engine.Search(context.Background(), "dune", true)
	session := engine.Search(context.Background(), "emma", false)

	assert.Equal(t, "emma", session.Query)
	assert.Len(t, session.Results, 20)
	assert.Equal(t, 0, searcher.queries[1].Offset)
	assert.Equal(t, []string{"dune"}, recorder.queries)
}

func TestSearch_Options(t *testing.T) {
	searcher := &pagedSearcher{total: 45}
	engine := NewEngine(searcher, nil, Options{PageSize: 10, OrderBy: catalog.OrderNewest})

	session := engine.Search(context.Background(), "dune", true)

	assert.Len(t, session.Results, 10)
	assert.Equal(t, 10, searcher.queries[0].Limit)
	assert.Equal(t, catalog.OrderNewest, searcher.queries[0].OrderBy)
}

func TestSearch_FirstPageFailure(t *testing.T) {
	searcher := &pagedSearcher{total: 45, fail: true}
	engine := NewEngine(searcher, nil, Options{})

	session := engine.Search(context.Background(), "dune", true)

	assert.Equal(t, StateFailed, session.State)
	assert.Equal(t, FailedMessage, session.Err)
	assert.Empty(t, session.Results)
	assert.False(t, session.Loading)
	assert.False(t, session.HasMore)
}

func TestLoadMore_FailureKeepsResults(t *testing.T) {
	searcher := &pagedSearcher{total: 45}
	engine := NewEngine(searcher, nil, Options{})

	engine.Search(context.Background(), "dune", true)

	searcher.fail = true
	session := engine.LoadMore(context.Background())

	assert.Equal(t, StateFailed, session.State)
	assert.Equal(t, FailedMessage, session.Err)
	assert.Len(t, session.Results, 20)
	assert.True(t, session.HasMore)

	// An explicit retry picks up where the failed page left off.
	searcher.fail = false
	session = engine.LoadMore(context.Background())

	assert.Equal(t, StateReady, session.State)
	assert.Empty(t, session.Err)
	assert.Len(t, session.Results, 40)
	assert.Equal(t, 20, searcher.queries[2].Offset)
}

func TestSearch_DuplicateItemsAcrossPages(t *testing.T) {
	searcher := &scriptedSearcher{pages: map[int]*catalog.Page{
		0: {TotalItems: 4, Items: []entities.CatalogItem{{ID: "a"}, {ID: "b"}}},
		2: {TotalItems: 4, Items: []entities.CatalogItem{{ID: "b"}, {ID: "c"}}},
	}}
	engine := NewEngine(searcher, nil, Options{PageSize: 2})

	engine.Search(context.Background(), "q", true)
	session := engine.LoadMore(context.Background())

	ids := make([]string, len(session.Results))
	for i, item := range session.Results {
		ids[i] = item.ID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, 4, session.NextOffset)
	assert.False(t, session.HasMore)
}

func TestSearch_EmptyPageStopsPaging(t *testing.T) {
	searcher := &scriptedSearcher{pages: map[int]*catalog.Page{
		0: {TotalItems: 100, Items: []entities.CatalogItem{{ID: "a"}}},
		1: {TotalItems: 100, Items: []entities.CatalogItem{}},
	}}
	engine := NewEngine(searcher, nil, Options{PageSize: 1})

	engine.Search(context.Background(), "q", true)
	session := engine.LoadMore(context.Background())

	assert.False(t, session.HasMore)
	assert.Len(t, session.Results, 1)
}

type scriptedSearcher struct {
	pages map[int]*catalog.Page
}

func (s *scriptedSearcher) Search(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	page, ok := s.pages[q.Offset]
	if !ok {
		return nil, errors.New("no such page")
	}
	return page, nil
}

// blockingSearcher hands every request to the test and waits for its reply.
type blockingSearcher struct {
	calls chan *pendingCall
}

type pendingCall struct {
	query catalog.Query
	reply chan reply
}

type reply struct {
	page *catalog.Page
	err  error
}

func newBlockingSearcher() *blockingSearcher {
	return &blockingSearcher{calls: make(chan *pendingCall)}
}

func (b *blockingSearcher) Search(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	call := &pendingCall{query: q, reply: make(chan reply, 1)}
	b.calls <- call
	r := <-call.reply
	return r.page, r.err
}

func (b *blockingSearcher) next(t *testing.T) *pendingCall {
	t.Helper()
	select {
	case call := <-b.calls:
		return call
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a catalog request")
		return nil
	}
}

func pageOf(total int, ids ...string) *catalog.Page {
	items := make([]entities.CatalogItem, len(ids))
	for i, id := range ids {
		items[i] = entities.CatalogItem{ID: id}
	}
	return &catalog.Page{TotalItems: total, Items: items}
}

func TestSearch_StaleResponseDiscarded(t *testing.T) {
	searcher := newBlockingSearcher()
	engine := NewEngine(searcher, nil, Options{})

	doneA := make(chan Session, 1)
	doneB := make(chan Session, 1)

	go func() { doneA <- engine.Search(context.Background(), "a", true) }()
	callA := searcher.next(t)
	assert.Equal(t, "a", callA.query.Q)

	go func() { doneB <- engine.Search(context.Background(), "b", true) }()
	callB := searcher.next(t)
	assert.Equal(t, "b", callB.query.Q)

	callB.reply <- reply{page: pageOf(2, "b1", "b2")}
	<-doneB

	callA.reply <- reply{page: pageOf(3, "a1", "a2", "a3")}
	<-doneA

	session := engine.Session()
	assert.Equal(t, "b", session.Query)
	assert.Equal(t, 2, session.TotalItems)
	require.Len(t, session.Results, 2)
	assert.Equal(t, "b1", session.Results[0].ID)
	assert.Equal(t, "b2", session.Results[1].ID)
	assert.Equal(t, StateReady, session.State)
}

func TestSearch_StaleFailureDiscarded(t *testing.T) {
	searcher := newBlockingSearcher()
	engine := NewEngine(searcher, nil, Options{})

	doneA := make(chan Session, 1)
	doneB := make(chan Session, 1)

	go func() { doneA <- engine.Search(context.Background(), "a", true) }()
	callA := searcher.next(t)

	go func() { doneB <- engine.Search(context.Background(), "b", true) }()
	callB := searcher.next(t)

	callA.reply <- reply{err: catalog.ErrFetchFailed}
	<-doneA

	// b is still loading; a's failure must not touch the session.
	session := engine.Session()
	assert.True(t, session.Loading)
	assert.Empty(t, session.Err)

	callB.reply <- reply{page: pageOf(1, "b1")}
	session = <-doneB

	assert.Equal(t, StateReady, session.State)
	assert.Len(t, session.Results, 1)
}

func TestLoadMore_IgnoredWhileLoading(t *testing.T) {
	searcher := newBlockingSearcher()
	engine := NewEngine(searcher, nil, Options{PageSize: 2})

	done := make(chan Session, 1)
	go func() { done <- engine.Search(context.Background(), "q", true) }()
	call := searcher.next(t)
	call.reply <- reply{page: pageOf(6, "1", "2")}
	<-done

	go func() { done <- engine.LoadMore(context.Background()) }()
	more := searcher.next(t)
	assert.Equal(t, 2, more.query.Offset)

	session := engine.LoadMore(context.Background())
	assert.True(t, session.Loading)

	more.reply <- reply{page: pageOf(6, "3", "4")}
	session = <-done
	assert.Len(t, session.Results, 4)
}

func TestSearch_OutOfOrderPageDiscarded(t *testing.T) {
	searcher := newBlockingSearcher()
	engine := NewEngine(searcher, nil, Options{PageSize: 2})

	done := make(chan Session, 2)
	go func() { done <- engine.Search(context.Background(), "q", true) }()
	first := searcher.next(t)
	first.reply <- reply{page: pageOf(6, "1", "2")}
	<-done

	// Two continuations race for the same offset; only the first to land applies.
	go func() { done <- engine.Search(context.Background(), "q", false) }()
	callX := searcher.next(t)
	go func() { done <- engine.Search(context.Background(), "q", false) }()
	callY := searcher.next(t)
	assert.Equal(t, 2, callX.query.Offset)
	assert.Equal(t, 2, callY.query.Offset)

	callY.reply <- reply{page: pageOf(6, "3", "4")}
	<-done
	callX.reply <- reply{page: pageOf(6, "3", "4")}
	<-done

	session := engine.Session()
	assert.Len(t, session.Results, 4)
	assert.Equal(t, 4, session.NextOffset)
}

func TestReset_DiscardsInFlight(t *testing.T) {
	searcher := newBlockingSearcher()
	engine := NewEngine(searcher, nil, Options{})

	done := make(chan Session, 1)
	go func() { done <- engine.Search(context.Background(), "a", true) }()
	call := searcher.next(t)

	engine.Reset()
	call.reply <- reply{page: pageOf(1, "a1")}
	<-done

	session := engine.Session()
	assert.Equal(t, StateIdle, session.State)
	assert.Empty(t, session.Results)
	assert.Empty(t, session.Query)
}

func TestObserver(t *testing.T) {
	searcher := &pagedSearcher{total: 3}
	engine := NewEngine(searcher, nil, Options{})

	var states []State
	engine.SetObserver(func(s Session) { states = append(states, s.State) })

	engine.Search(context.Background(), "q", true)

	assert.Equal(t, []State{StateLoading, StateReady}, states)
}

func TestSession_IsSnapshot(t *testing.T) {
	searcher := &pagedSearcher{total: 3}
	engine := NewEngine(searcher, nil, Options{})

	session := engine.Search(context.Background(), "q", true)
	session.Results[0].ID = "mutated"

	assert.Equal(t, "q-0", engine.Session().Results[0].ID)
}
