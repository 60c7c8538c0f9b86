package entities

import (
	"time"
)

// CollectionSlot holds the serialized snapshot of one user collection.
// Each slot is rewritten in full whenever its collection changes.
type CollectionSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CollectionSlot) TableName() string {
	return "collection_slots"
}

// Known slot keys
const (
	SlotKeyFavorites      = "book_favorites"
	SlotKeyReadingLists   = "book_reading_lists"
	SlotKeyRecentSearches = "book_recent_searches"
	SlotKeyRecentlyViewed = "book_recently_viewed"
)
