// Package covers keeps a local copy of catalog cover images.
//
// Files are named cover_<bookID>_<size>_<urlhash><ext>. The size is the
// rendition picked from the item's image links and the extension comes from
// the response Content-Type, so a cached file can be found again without
// another request. When an item gains a bigger rendition the new file
// replaces the old ones.
package covers

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mrlokans/bookfinder/internal/entities"
)

// Largest cover we are willing to store.
const maxCoverBytes = 10 << 20

var (
	unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

	ErrNotAnImage = errors.New("response is not an image")
	ErrTooLarge   = errors.New("cover image too large")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var imageSizes = []entities.ImageSize{
	entities.ImageExtraLarge,
	entities.ImageLarge,
	entities.ImageMedium,
	entities.ImageSmall,
	entities.ImageThumbnail,
	entities.ImageSmallThumbnail,
}

type Cache struct {
	dir    string
	client *http.Client
}

func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{
		dir:    dir,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// GetCover returns the local path of the largest cover the catalog offers for
// item, downloading it on first use. An item without image links yields an
// empty path and no error.
func (c *Cache) GetCover(ctx context.Context, item entities.CatalogItem) (string, error) {
	size, link, ok := item.LargestImage()
	if !ok {
		return "", nil
	}

	base := coverBase(item.ID, size, link)
	if path, ok := c.lookup(base); ok {
		return path, nil
	}

	path, err := c.download(ctx, link, base)
	if err != nil {
		return "", fmt.Errorf("download cover for %s: %w", item.ID, err)
	}

	c.pruneExcept(item.ID, path)
	return path, nil
}

// InvalidateCover removes every cached rendition of a book's cover.
func (c *Cache) InvalidateCover(bookID string) error {
	return c.pruneExcept(bookID, "")
}

// coverBase is the file name without extension.
func coverBase(bookID string, size entities.ImageSize, link string) string {
	hash := sha256.Sum256([]byte(link))
	return fmt.Sprintf("cover_%s_%s_%x", safeID(bookID), size, hash[:8])
}

func safeID(bookID string) string {
	if id := unsafeIDChars.ReplaceAllString(bookID, ""); id != "" {
		return id
	}
	return "unknown"
}

// extensionFor maps a Content-Type header to a file extension. Non-image
// responses are rejected; unknown image subtypes are stored as ".img".
func extensionFor(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: content type %q", ErrNotAnImage, contentType)
	}
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext, nil
	}
	if strings.HasPrefix(mediaType, "image/") {
		return ".img", nil
	}
	return "", fmt.Errorf("%w: content type %q", ErrNotAnImage, mediaType)
}

func (c *Cache) lookup(base string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(c.dir, base+".*"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

func (c *Cache) download(ctx context.Context, link, base string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Bookfinder/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	ext, err := extensionFor(resp.Header.Get("Content-Type"))
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxCoverBytes+1))
	if err != nil {
		return "", err
	}
	if n > maxCoverBytes {
		return "", ErrTooLarge
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}

	path := filepath.Join(c.dir, base+ext)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	committed = true
	return path, nil
}

// pruneExcept removes cached covers of bookID other than keep.
func (c *Cache) pruneExcept(bookID, keep string) error {
	var matches []string
	for _, size := range imageSizes {
		pattern := fmt.Sprintf("cover_%s_%s_%s.*", safeID(bookID), size, strings.Repeat("?", 16))
		found, err := filepath.Glob(filepath.Join(c.dir, pattern))
		if err != nil {
			return err
		}
		matches = append(matches, found...)
	}
	for _, match := range matches {
		if match == keep {
			continue
		}
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			if keep != "" {
				log.Printf("WARNING: failed to remove stale cover %s: %v", match, err)
				continue
			}
			return err
		}
	}
	return nil
}
