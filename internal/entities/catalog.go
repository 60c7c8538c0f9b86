package entities

import (
	"strings"
)

// CatalogItem is a single volume returned by the remote catalog. JSON field
// names follow the catalog wire format so stored snapshots decode the same way
// as live responses.
type CatalogItem struct {
	ID         string      `json:"id"`
	VolumeInfo VolumeInfo  `json:"volumeInfo"`
	SaleInfo   *SaleInfo   `json:"saleInfo,omitempty"`
	AccessInfo *AccessInfo `json:"accessInfo,omitempty"`
}

type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors,omitempty"`
	Publisher           string               `json:"publisher,omitempty"`
	PublishedDate       string               `json:"publishedDate,omitempty"`
	Description         string               `json:"description,omitempty"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers,omitempty"`
	PageCount           int                  `json:"pageCount,omitempty"`
	Categories          []string             `json:"categories,omitempty"`
	AverageRating       float64              `json:"averageRating,omitempty"`
	RatingsCount        int                  `json:"ratingsCount,omitempty"`
	ImageLinks          *ImageLinks          `json:"imageLinks,omitempty"`
	Language            string               `json:"language,omitempty"`
	PreviewLink         string               `json:"previewLink,omitempty"`
	InfoLink            string               `json:"infoLink,omitempty"`
	CanonicalVolumeLink string               `json:"canonicalVolumeLink,omitempty"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"` // ISBN_10, ISBN_13, OTHER
	Identifier string `json:"identifier"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
	Small          string `json:"small,omitempty"`
	Medium         string `json:"medium,omitempty"`
	Large          string `json:"large,omitempty"`
	ExtraLarge     string `json:"extraLarge,omitempty"`
}

type Price struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

type SaleInfo struct {
	Country     string `json:"country,omitempty"`
	Saleability string `json:"saleability,omitempty"`
	IsEbook     bool   `json:"isEbook,omitempty"`
	ListPrice   *Price `json:"listPrice,omitempty"`
	RetailPrice *Price `json:"retailPrice,omitempty"`
	BuyLink     string `json:"buyLink,omitempty"`
}

type FormatAvailability struct {
	IsAvailable  bool   `json:"isAvailable"`
	ACSTokenLink string `json:"acsTokenLink,omitempty"`
}

type AccessInfo struct {
	Country                string              `json:"country,omitempty"`
	Viewability            string              `json:"viewability,omitempty"`
	Embeddable             bool                `json:"embeddable,omitempty"`
	PublicDomain           bool                `json:"publicDomain,omitempty"`
	TextToSpeechPermission string              `json:"textToSpeechPermission,omitempty"`
	Epub                   *FormatAvailability `json:"epub,omitempty"`
	PDF                    *FormatAvailability `json:"pdf,omitempty"`
	WebReaderLink          string              `json:"webReaderLink,omitempty"`
	AccessViewStatus       string              `json:"accessViewStatus,omitempty"`
	QuoteSharingAllowed    bool                `json:"quoteSharingAllowed,omitempty"`
}

func (c CatalogItem) Title() string {
	if c.VolumeInfo.Title == "" {
		return "Untitled"
	}
	return c.VolumeInfo.Title
}

// AuthorLine joins the authors for display, or returns "Unknown author".
func (c CatalogItem) AuthorLine() string {
	if len(c.VolumeInfo.Authors) == 0 {
		return "Unknown author"
	}
	return strings.Join(c.VolumeInfo.Authors, ", ")
}

// Thumbnail returns the best available cover image link, preferring the
// larger renditions.
func (c CatalogItem) Thumbnail() string {
	links := c.VolumeInfo.ImageLinks
	if links == nil {
		return ""
	}
	for _, link := range []string{links.Large, links.Medium, links.Small, links.Thumbnail, links.SmallThumbnail} {
		if link != "" {
			return link
		}
	}
	return ""
}

// ImageSize names one rendition in ImageLinks.
type ImageSize string

const (
	ImageExtraLarge     ImageSize = "extraLarge"
	ImageLarge          ImageSize = "large"
	ImageMedium         ImageSize = "medium"
	ImageSmall          ImageSize = "small"
	ImageThumbnail      ImageSize = "thumbnail"
	ImageSmallThumbnail ImageSize = "smallThumbnail"
)

// LargestImage returns the biggest rendition the catalog offers for this item
// and its size name. ok is false when there are no image links at all.
func (c CatalogItem) LargestImage() (size ImageSize, link string, ok bool) {
	links := c.VolumeInfo.ImageLinks
	if links == nil {
		return "", "", false
	}
	candidates := []struct {
		size ImageSize
		link string
	}{
		{ImageExtraLarge, links.ExtraLarge},
		{ImageLarge, links.Large},
		{ImageMedium, links.Medium},
		{ImageSmall, links.Small},
		{ImageThumbnail, links.Thumbnail},
		{ImageSmallThumbnail, links.SmallThumbnail},
	}
	for _, c := range candidates {
		if c.link != "" {
			return c.size, c.link, true
		}
	}
	return "", "", false
}

// ISBN returns the ISBN-13 if present, falling back to ISBN-10.
func (c CatalogItem) ISBN() string {
	var isbn10 string
	for _, id := range c.VolumeInfo.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

// MatchesText reports whether the title or any author contains q,
// case-insensitively. An empty q matches everything.
func (c CatalogItem) MatchesText(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.VolumeInfo.Title), q) {
		return true
	}
	for _, author := range c.VolumeInfo.Authors {
		if strings.Contains(strings.ToLower(author), q) {
			return true
		}
	}
	return false
}
