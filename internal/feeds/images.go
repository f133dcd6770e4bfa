package feeds

import (
	"strings"

	"github.com/mmcdole/gofeed"
)

// imageBlocklist lists filename substrings that mark a discovered image as
// decoration rather than editorial art. A blocked image counts as absent.
var imageBlocklist = []string{
	"placeholder",
	"logo",
	"icon",
	"pixel",
	"spacer",
	"blank",
	"avatar",
	"default",
}

// discoverImage finds an image URL for a feed entry. Priority: media:content
// extension, the entry's own image, an image-typed enclosure. Returns ""
// when nothing usable was found.
func discoverImage(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, ext := range media["content"] {
			if u := ext.Attrs["url"]; usableImage(u) {
				return u
			}
		}
		for _, ext := range media["thumbnail"] {
			if u := ext.Attrs["url"]; usableImage(u) {
				return u
			}
		}
	}

	if item.Image != nil && usableImage(item.Image.URL) {
		return item.Image.URL
	}

	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image") && usableImage(enc.URL) {
			return enc.URL
		}
	}

	return ""
}

func usableImage(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	for _, blocked := range imageBlocklist {
		if strings.Contains(lower, blocked) {
			return false
		}
	}
	return true
}
