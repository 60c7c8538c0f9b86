package entities

import (
	"slices"
	"time"
)

// Favorite references a catalog item by ID. The item itself is fetched on demand.
type Favorite struct {
	ID        string    `json:"id"`
	DateAdded time.Time `json:"dateAdded"`
}

type ReadingList struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Books        []string  `json:"books"` // catalog item IDs, unique, insertion order
	DateCreated  time.Time `json:"dateCreated"`
	LastModified time.Time `json:"lastModified"`
}

func (l ReadingList) Contains(bookID string) bool {
	return slices.Contains(l.Books, bookID)
}

// Clone returns a copy that shares no backing array with l.
func (l ReadingList) Clone() ReadingList {
	l.Books = slices.Clone(l.Books)
	if l.Books == nil {
		l.Books = []string{}
	}
	return l
}
