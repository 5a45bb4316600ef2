package rickmorty

import (
	"context"
)

// API defines the read operations the browse models depend on
type API interface {
	// FetchCharacterPage retrieves one page of characters; page 0 requests the default first page
	FetchCharacterPage(ctx context.Context, page int) (*CharacterPage, error)

	// FetchEpisodes retrieves the episodes with the given IDs, in request order
	FetchEpisodes(ctx context.Context, ids []int) ([]Episode, error)

	// FetchCharacter retrieves a single character by ID
	FetchCharacter(ctx context.Context, id int) (*Character, error)
}

var _ API = (*Client)(nil)
