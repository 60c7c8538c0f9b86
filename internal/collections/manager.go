package collections

import (
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookfinder/internal/entities"
)

const (
	MaxRecentSearches = 10
	MaxRecentlyViewed = 20
)

// Manager is the only writer of the user collections. All state is held in
// memory and written through to the Store after every effective mutation.
// Operations never fail: a failed write is logged and the in-memory state stays
// authoritative for the rest of the process.
type Manager struct {
	store *Store
	now   func() time.Time
	newID func() string

	mu             sync.Mutex
	favorites      []entities.Favorite
	readingLists   []entities.ReadingList
	recentSearches []string
	recentlyViewed []entities.CatalogItem
}

type Option func(*Manager)

// WithClock overrides the time source used for dateAdded/dateCreated/lastModified.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides how reading list IDs are allocated.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// NewManager loads all four collections from store.
func NewManager(store *Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		now:   time.Now,
		newID: func() string { return "list_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(m)
	}

	m.favorites = store.LoadFavorites()
	m.readingLists = store.LoadReadingLists()
	m.recentSearches = store.LoadRecentSearches()
	m.recentlyViewed = store.LoadRecentlyViewed()

	return m
}

// Favorites

func (m *Manager) AddFavorite(item entities.CatalogItem) {
	if item.ID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.favoriteIndex(item.ID) >= 0 {
		return
	}
	m.favorites = append(m.favorites, entities.Favorite{ID: item.ID, DateAdded: m.now()})
	m.persist(entities.SlotKeyFavorites, m.store.SaveFavorites(m.favorites))
}

func (m *Manager) RemoveFavorite(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.favoriteIndex(id)
	if i < 0 {
		return
	}
	m.favorites = slices.Delete(slices.Clone(m.favorites), i, i+1)
	m.persist(entities.SlotKeyFavorites, m.store.SaveFavorites(m.favorites))
}

func (m *Manager) IsFavorited(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.favoriteIndex(id) >= 0
}

// ToggleFavorite adds or removes item and returns whether it is now a favorite.
func (m *Manager) ToggleFavorite(item entities.CatalogItem) bool {
	if m.IsFavorited(item.ID) {
		m.RemoveFavorite(item.ID)
		return false
	}
	m.AddFavorite(item)
	return true
}

func (m *Manager) Favorites() []entities.Favorite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.favorites)
}

func (m *Manager) favoriteIndex(id string) int {
	return slices.IndexFunc(m.favorites, func(f entities.Favorite) bool { return f.ID == id })
}

// Reading lists

// CreateReadingList appends an empty list and returns its ID, so callers can
// add books to it straight away. Name validation is the caller's job.
func (m *Manager) CreateReadingList(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.newID()
	for m.listIndex(id) >= 0 {
		id = m.newID()
	}

	now := m.now()
	m.readingLists = append(m.readingLists, entities.ReadingList{
		ID:           id,
		Name:         name,
		Books:        []string{},
		DateCreated:  now,
		LastModified: now,
	})
	m.persist(entities.SlotKeyReadingLists, m.store.SaveReadingLists(m.readingLists))
	return id
}

func (m *Manager) DeleteReadingList(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.listIndex(id)
	if i < 0 {
		return
	}
	m.readingLists = slices.Delete(slices.Clone(m.readingLists), i, i+1)
	m.persist(entities.SlotKeyReadingLists, m.store.SaveReadingLists(m.readingLists))
}

func (m *Manager) AddBookToList(bookID, listID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.listIndex(listID)
	if i < 0 || m.readingLists[i].Contains(bookID) {
		return
	}

	m.updateList(i, func(list *entities.ReadingList) {
		list.Books = append(list.Books, bookID)
	})
}

// RemoveBookFromList removes bookID from the list. LastModified is touched
// whenever the list exists, even if the book was not in it.
func (m *Manager) RemoveBookFromList(bookID, listID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.listIndex(listID)
	if i < 0 {
		return
	}

	m.updateList(i, func(list *entities.ReadingList) {
		list.Books = slices.DeleteFunc(list.Books, func(id string) bool { return id == bookID })
	})
}

func (m *Manager) ReadingList(id string) (entities.ReadingList, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.listIndex(id)
	if i < 0 {
		return entities.ReadingList{}, false
	}
	return m.readingLists[i].Clone(), true
}

func (m *Manager) ReadingLists() []entities.ReadingList {
	m.mu.Lock()
	defer m.mu.Unlock()

	lists := make([]entities.ReadingList, len(m.readingLists))
	for i, list := range m.readingLists {
		lists[i] = list.Clone()
	}
	return lists
}

// ListsContaining returns the lists that bookID belongs to.
func (m *Manager) ListsContaining(bookID string) []entities.ReadingList {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lists []entities.ReadingList
	for _, list := range m.readingLists {
		if list.Contains(bookID) {
			lists = append(lists, list.Clone())
		}
	}
	return lists
}

func (m *Manager) listIndex(id string) int {
	return slices.IndexFunc(m.readingLists, func(l entities.ReadingList) bool { return l.ID == id })
}

// updateList replaces the list at i with a mutated copy so slices previously
// handed out are never modified.
func (m *Manager) updateList(i int, mutate func(*entities.ReadingList)) {
	lists := slices.Clone(m.readingLists)
	list := lists[i].Clone()
	mutate(&list)
	list.LastModified = m.now()
	lists[i] = list
	m.readingLists = lists
	m.persist(entities.SlotKeyReadingLists, m.store.SaveReadingLists(m.readingLists))
}

// History

// AddRecentSearch moves query to the front of the log. Blank queries are ignored.
func (m *Manager) AddRecentSearch(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.recentSearches) > 0 && m.recentSearches[0] == query {
		return
	}

	searches := make([]string, 0, len(m.recentSearches)+1)
	searches = append(searches, query)
	for _, s := range m.recentSearches {
		if s != query {
			searches = append(searches, s)
		}
	}
	if len(searches) > MaxRecentSearches {
		searches = searches[:MaxRecentSearches]
	}
	m.recentSearches = searches
	m.persist(entities.SlotKeyRecentSearches, m.store.SaveRecentSearches(m.recentSearches))
}

func (m *Manager) RecentSearches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.recentSearches)
}

func (m *Manager) ClearRecentSearches() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recentSearches = []string{}
	m.persist(entities.SlotKeyRecentSearches, m.store.SaveRecentSearches(m.recentSearches))
}

// AddRecentlyViewed puts the latest snapshot of item at the front of the log,
// replacing any older snapshot with the same ID. Items without an ID are ignored.
func (m *Manager) AddRecentlyViewed(item entities.CatalogItem) {
	if item.ID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	viewed := make([]entities.CatalogItem, 0, len(m.recentlyViewed)+1)
	viewed = append(viewed, item)
	for _, v := range m.recentlyViewed {
		if v.ID != item.ID {
			viewed = append(viewed, v)
		}
	}
	if len(viewed) > MaxRecentlyViewed {
		viewed = viewed[:MaxRecentlyViewed]
	}
	m.recentlyViewed = viewed
	m.persist(entities.SlotKeyRecentlyViewed, m.store.SaveRecentlyViewed(m.recentlyViewed))
}

func (m *Manager) RecentlyViewed() []entities.CatalogItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.recentlyViewed)
}

func (m *Manager) persist(key string, err error) {
	if err != nil {
		log.Printf("ERROR: failed to persist %s: %v", key, err)
	}
}
