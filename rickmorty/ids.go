package rickmorty

import (
	"strconv"
	"strings"
)

// ResourceID parses the ID out of the last non-empty path segment of a resource URL,
// e.g. "https://rickandmortyapi.com/api/episode/28" yields 28.
func ResourceID(resourceURL string) (int, bool) {
	segments := strings.Split(resourceURL, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == "" {
			continue
		}
		id, err := strconv.Atoi(segments[i])
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// ResourceIDs applies ResourceID to each URL, keeping order and skipping entries that do not parse
func ResourceIDs(resourceURLs []string) []int {
	ids := make([]int, 0, len(resourceURLs))
	for _, u := range resourceURLs {
		if id, ok := ResourceID(u); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
