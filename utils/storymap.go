package utils

import (
	"regexp"
	"strings"
)

var (
	storyMapIDPattern = regexp.MustCompile(`(?i)storymaps\.arcgis\.com/(?:stories|collections)/([0-9a-f]{32}|[A-Za-z0-9_-]+)`)
	slugInvalidChars  = regexp.MustCompile(`[^a-z0-9]+`)
)

// ExtractStoryMapID pulls the story identifier out of a StoryMap URL.
// Extraction is best-effort: an empty string means the URL did not match the
// known storymaps.arcgis.com shapes, which is not an error.
func ExtractStoryMapID(url string) string {
	match := storyMapIDPattern.FindStringSubmatch(url)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// Slugify derives a URL-friendly slug from a submission title. Slugs follow
// the title, so they are not stable across title edits.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 120 {
		slug = strings.Trim(slug[:120], "-")
	}
	return slug
}
