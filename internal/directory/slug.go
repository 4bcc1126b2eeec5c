package directory

import (
	"regexp"
	"strings"

	"trustgrade-workers/internal/models"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, collapses every run of characters outside
// [a-z0-9] into one '-', and trims '-' from both ends.
func Slugify(name string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// Resolve returns the first record whose slugified name equals slug.
func Resolve(records []models.BusinessRecord, slug string) (*models.BusinessRecord, bool) {
	for i := range records {
		if Slugify(records[i].Name) == slug {
			r := records[i]
			return &r, true
		}
	}
	return nil, false
}

func ProfilePath(slug string) string {
	return "/business/" + slug
}
