package browse

import (
	"errors"

	"github.com/s0up4200/rickdex/rickmorty"
)

// Display messages for failures that do not come from the API client
const (
	MessageUnexpected     = "An unexpected error occurred"
	MessageEpisodesFailed = "Failed to load episodes"
	MessageNoEpisodes     = "No episodes available"
)

// errInterrupted marks an operation that exited before its request returned
var errInterrupted = errors.New("operation interrupted")

// displayMessage returns the client's display text for err, or fallback for anything else
func displayMessage(err error, fallback string) string {
	var apiErr *rickmorty.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return fallback
}
