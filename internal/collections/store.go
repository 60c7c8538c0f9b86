package collections

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Store maps each collection to its durable slot. Loads fail soft: a missing
// or corrupt slot reads as an empty collection.
type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

func (s *Store) LoadFavorites() []entities.Favorite {
	return load[entities.Favorite](s.storage, entities.SlotKeyFavorites)
}

func (s *Store) SaveFavorites(favorites []entities.Favorite) error {
	return save(s.storage, entities.SlotKeyFavorites, favorites)
}

func (s *Store) LoadReadingLists() []entities.ReadingList {
	lists := load[entities.ReadingList](s.storage, entities.SlotKeyReadingLists)
	for i := range lists {
		if lists[i].Books == nil {
			lists[i].Books = []string{}
		}
	}
	return lists
}

func (s *Store) SaveReadingLists(lists []entities.ReadingList) error {
	return save(s.storage, entities.SlotKeyReadingLists, lists)
}

func (s *Store) LoadRecentSearches() []string {
	return load[string](s.storage, entities.SlotKeyRecentSearches)
}

func (s *Store) SaveRecentSearches(searches []string) error {
	return save(s.storage, entities.SlotKeyRecentSearches, searches)
}

func (s *Store) LoadRecentlyViewed() []entities.CatalogItem {
	return load[entities.CatalogItem](s.storage, entities.SlotKeyRecentlyViewed)
}

func (s *Store) SaveRecentlyViewed(items []entities.CatalogItem) error {
	return save(s.storage, entities.SlotKeyRecentlyViewed, items)
}

func load[T any](storage Storage, key string) []T {
	data, err := storage.Load(key)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			log.Printf("WARNING: failed to read %s, starting empty: %v", key, err)
		}
		return []T{}
	}

	var value []T
	if err := json.Unmarshal(data, &value); err != nil {
		log.Printf("WARNING: %s is corrupt, starting empty: %v", key, err)
		return []T{}
	}
	if value == nil {
		return []T{}
	}
	return value
}

func save[T any](storage Storage, key string, value []T) error {
	if value == nil {
		value = []T{}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return storage.Save(key, data)
}
