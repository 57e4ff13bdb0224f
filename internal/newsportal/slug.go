package newsportal

import (
	"regexp"
	"strings"
)

const maxSlugLength = 120

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify converts a title to a URL-safe slug: lower-cased, every run of
// characters outside [a-z0-9] collapsed to a single dash, no leading or
// trailing dashes.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func truncateSlug(slug string) string {
	if len(slug) <= maxSlugLength {
		return slug
	}
	return strings.TrimRight(slug[:maxSlugLength], "-")
}

// NormalizeTags slugifies tags, drops blanks and duplicates, keeps order.
func NormalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		slug := truncateSlug(Slugify(tag))
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		result = append(result, slug)
	}

	return result
}
