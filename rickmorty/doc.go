// Package rickmorty provides a client for the public Rick and Morty REST API.
//
// The client covers the read operations the browser needs: listing characters
// page by page, fetching a single character and fetching a batch of episodes by
// ID. Every call maps transport and HTTP outcomes onto a closed set of errors
// whose Error() text is suitable for display.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := rickmorty.NewClient(
//		rickmorty.DefaultBaseURL,
//		logger,
//		rickmorty.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.FetchCharacterPage(ctx, 2)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	episodes, err := client.FetchEpisodes(ctx, page.Results[0].EpisodeIDs())
//
// # Episode batches
//
// The episode endpoint answers a single ID with a JSON object and several IDs
// with a JSON array. FetchEpisodes decides how to decode from the number of IDs
// requested, not from the shape of the body, and always returns a slice.
//
// # Error Handling
//
// Failures are reported as *Error values:
//
//   - ErrInvalidURL: the request could not be built
//   - ErrInvalidResponse: no usable HTTP response was received
//   - ErrDecoding: the body did not match the expected shape
//   - ErrServer: the status code was outside 200-299
//   - ErrData: reserved for empty payloads
//
//	var apiErr *rickmorty.Error
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// Handle missing resource
//	}
package rickmorty
