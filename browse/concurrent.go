package browse

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/s0up4200/rickdex/rickmorty"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency limits how many characters LoadDetails fetches at once
const DefaultConcurrency = 4

// DetailResult pairs a requested character ID with its loaded detail model.
// Err is set when the character itself could not be fetched; episode failures
// are reported through the model's ErrorMessage.
type DetailResult struct {
	CharacterID int
	Detail      *DetailModel
	Err         error
}

// LoadDetails fetches each character and its episodes concurrently.
// Results keep the order of ids; a failure for one ID does not stop the others.
func LoadDetails(ctx context.Context, api rickmorty.API, ids []int, concurrency int, logger zerolog.Logger) ([]DetailResult, error) {
	results := make([]DetailResult, len(ids))
	if len(ids) == 0 {
		return results, nil
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, id := range ids {
		g.Go(func() error {
			// Each goroutine owns results[i]
			results[i].CharacterID = id

			character, err := api.FetchCharacter(ctx, id)
			if err == nil && character == nil {
				err = rickmorty.ErrData
			}
			if err != nil {
				logger.Warn().
					Err(err).
					Int("character_id", id).
					Msg("Failed to fetch character")
				results[i].Err = err
				return nil
			}

			detail := NewDetailModel(*character, api, logger)
			detail.FetchEpisodes(ctx)
			results[i].Detail = detail
			return nil
		})
	}

	return results, g.Wait()
}
