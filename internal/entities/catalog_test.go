package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogItem_Decode(t *testing.T) {
	raw := `{
		"kind": "books#volume",
		"id": "zyTCAlFPjgYC",
		"volumeInfo": {
			"title": "The Google Story",
			"authors": ["David A. Vise", "Mark Malseed"],
			"publishedDate": "2005-11-15",
			"industryIdentifiers": [
				{"type": "ISBN_10", "identifier": "055380457X"},
				{"type": "ISBN_13", "identifier": "9780553804577"}
			],
			"pageCount": 207,
			"categories": ["Browsers (Computer programs)"],
			"averageRating": 3.5,
			"ratingsCount": 136,
			"imageLinks": {
				"smallThumbnail": "http://books.google.com/books?id=zyTCAlFPjgYC&zoom=5",
				"thumbnail": "http://books.google.com/books?id=zyTCAlFPjgYC&zoom=1"
			}
		},
		"saleInfo": {"country": "US", "saleability": "FOR_SALE", "isEbook": true,
			"listPrice": {"amount": 11.99, "currencyCode": "USD"}},
		"accessInfo": {"viewability": "PARTIAL", "epub": {"isAvailable": true}}
	}`

	var item CatalogItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))

	assert.Equal(t, "zyTCAlFPjgYC", item.ID)
	assert.Equal(t, "The Google Story", item.Title())
	assert.Equal(t, "David A. Vise, Mark Malseed", item.AuthorLine())
	assert.Equal(t, "9780553804577", item.ISBN())
	assert.Equal(t, "http://books.google.com/books?id=zyTCAlFPjgYC&zoom=1", item.Thumbnail())
	assert.InDelta(t, 3.5, item.VolumeInfo.AverageRating, 0.001)
	require.NotNil(t, item.SaleInfo)
	assert.InDelta(t, 11.99, item.SaleInfo.ListPrice.Amount, 0.001)
	require.NotNil(t, item.AccessInfo)
	assert.True(t, item.AccessInfo.Epub.IsAvailable)
}

func TestCatalogItem_Fallbacks(t *testing.T) {
	var item CatalogItem

	assert.Equal(t, "Untitled", item.Title())
	assert.Equal(t, "Unknown author", item.AuthorLine())
	assert.Empty(t, item.Thumbnail())
	assert.Empty(t, item.ISBN())

	item.VolumeInfo.IndustryIdentifiers = []IndustryIdentifier{{Type: "ISBN_10", Identifier: "0441013597"}}
	assert.Equal(t, "0441013597", item.ISBN())
}

func TestCatalogItem_MatchesText(t *testing.T) {
	item := CatalogItem{VolumeInfo: VolumeInfo{Title: "Dune Messiah", Authors: []string{"Frank Herbert"}}}

	assert.True(t, item.MatchesText("messiah"))
	assert.True(t, item.MatchesText("HERBERT"))
	assert.True(t, item.MatchesText("  "))
	assert.False(t, item.MatchesText("austen"))
}

func TestReadingList_Clone(t *testing.T) {
	list := ReadingList{ID: "list_1", Books: []string{"a"}}
	clone := list.Clone()
	clone.Books[0] = "b"

	assert.Equal(t, "a", list.Books[0])
	assert.True(t, list.Contains("a"))
	assert.False(t, list.Contains("b"))

	empty := ReadingList{}.Clone()
	assert.NotNil(t, empty.Books)
}

func TestIsFeaturedGenre(t *testing.T) {
	assert.True(t, IsFeaturedGenre(GenreFantasy))
	assert.False(t, IsFeaturedGenre(GenrePoetry))
	for _, g := range FeaturedGenres {
		assert.Contains(t, Genres, g)
	}
}

func TestCatalogItem_LargestImage(t *testing.T) {
	tests := []struct {
		name     string
		links    *ImageLinks
		wantSize ImageSize
		wantLink string
		wantOK   bool
	}{
		{name: "no links", links: nil},
		{name: "empty links", links: &ImageLinks{}},
		{
			name:     "extra large wins",
			links:    &ImageLinks{ExtraLarge: "xl", Large: "l", Thumbnail: "t"},
			wantSize: ImageExtraLarge, wantLink: "xl", wantOK: true,
		},
		{
			name:     "medium over thumbnail",
			links:    &ImageLinks{Medium: "m", Thumbnail: "t", SmallThumbnail: "st"},
			wantSize: ImageMedium, wantLink: "m", wantOK: true,
		},
		{
			name:     "small thumbnail as last resort",
			links:    &ImageLinks{SmallThumbnail: "st"},
			wantSize: ImageSmallThumbnail, wantLink: "st", wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := CatalogItem{ID: "x", VolumeInfo: VolumeInfo{ImageLinks: tt.links}}
			size, link, ok := item.LargestImage()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSize, size)
			assert.Equal(t, tt.wantLink, link)
		})
	}
}
