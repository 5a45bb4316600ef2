package browse

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/s0up4200/rickdex/rickmorty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetailModel(episodes ...string) (*DetailModel, *mockAPI) {
	api := &mockAPI{}
	character := newCharacter(1, episodes...)
	return NewDetailModel(character, api, zerolog.Nop()), api
}

func TestDetailModel_InitialState(t *testing.T) {
	model, _ := newTestDetailModel("https://rickandmortyapi.com/api/episode/1")

	assert.Empty(t, model.Episodes())
	assert.False(t, model.IsLoadingEpisodes())
	assert.Empty(t, model.ErrorMessage())
	assert.Equal(t, 1, model.Character().ID)
}

func TestDetailModel_FetchEpisodes(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		model, api := newTestDetailModel(
			"https://rickandmortyapi.com/api/episode/1",
			"https://rickandmortyapi.com/api/episode/2",
		)
		api.episodes = newEpisodes(2)

		model.FetchEpisodes(ctx)

		assert.Len(t, model.Episodes(), 2)
		assert.False(t, model.IsLoadingEpisodes())
		assert.Empty(t, model.ErrorMessage())
		assert.Equal(t, 1, api.fetchEpisodesCalls)
		assert.Equal(t, []int{1, 2}, api.lastEpisodeIDs)
	})

	t.Run("skips unparseable urls", func(t *testing.T) {
		model, api := newTestDetailModel(
			"https://rickandmortyapi.com/api/episode/1",
			"invalid-url",
			"https://rickandmortyapi.com/api/episode/5",
		)
		api.episodes = newEpisodes(2)

		model.FetchEpisodes(ctx)

		assert.Equal(t, []int{1, 5}, api.lastEpisodeIDs)
	})

	t.Run("no episodes", func(t *testing.T) {
		model, api := newTestDetailModel()

		model.FetchEpisodes(ctx)

		assert.Empty(t, model.Episodes())
		assert.False(t, model.IsLoadingEpisodes())
		assert.Equal(t, "No episodes available", model.ErrorMessage())
		assert.Equal(t, 0, api.fetchEpisodesCalls)
	})

	t.Run("only invalid urls", func(t *testing.T) {
		model, api := newTestDetailModel("invalid-url", "https://rickandmortyapi.com/api/episode/abc")

		model.FetchEpisodes(ctx)

		assert.Equal(t, MessageNoEpisodes, model.ErrorMessage())
		assert.Equal(t, 0, api.fetchEpisodesCalls)
	})

	t.Run("server error", func(t *testing.T) {
		model, api := newTestDetailModel("https://rickandmortyapi.com/api/episode/1")
		api.setError(rickmorty.ServerError(404))

		model.FetchEpisodes(ctx)

		assert.Empty(t, model.Episodes())
		assert.False(t, model.IsLoadingEpisodes())
		assert.Equal(t, "Server error: 404", model.ErrorMessage())
	})

	t.Run("unexpected error", func(t *testing.T) {
		model, api := newTestDetailModel("https://rickandmortyapi.com/api/episode/1")
		api.setError(errors.New("tls handshake timeout"))

		model.FetchEpisodes(ctx)

		assert.Equal(t, MessageEpisodesFailed, model.ErrorMessage())
	})

	t.Run("retry after failure", func(t *testing.T) {
		model, api := newTestDetailModel("https://rickandmortyapi.com/api/episode/1")
		api.setError(rickmorty.ErrInvalidResponse)
		model.FetchEpisodes(ctx)
		require.Equal(t, "Invalid response from server", model.ErrorMessage())

		api.setError(nil)
		api.episodes = newEpisodes(1)
		model.FetchEpisodes(ctx)

		assert.Empty(t, model.ErrorMessage())
		assert.Len(t, model.Episodes(), 1)
		assert.Equal(t, 2, api.fetchEpisodesCalls)
	})
}

func TestDetailModel_FetchEpisodes_InFlightGuard(t *testing.T) {
	model, api := newTestDetailModel("https://rickandmortyapi.com/api/episode/1")
	api.episodes = newEpisodes(1)
	api.entered = make(chan struct{})
	api.block = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		model.FetchEpisodes(context.Background())
	}()

	<-api.entered
	assert.True(t, model.IsLoadingEpisodes())
	model.FetchEpisodes(context.Background())

	close(api.block)
	wg.Wait()

	_, episodeCalls := api.calls()
	assert.Equal(t, 1, episodeCalls)
	assert.False(t, model.IsLoadingEpisodes())
}

func TestDetailModel_Subscribe(t *testing.T) {
	model, _ := newTestDetailModel()

	var states []DetailState
	model.Subscribe(func(s DetailState) {
		states = append(states, s)
	})

	model.FetchEpisodes(context.Background())

	require.Len(t, states, 2)
	assert.True(t, states[0].IsLoadingEpisodes)
	assert.False(t, states[1].IsLoadingEpisodes)
	assert.Equal(t, MessageNoEpisodes, states[1].ErrorMessage)

	model.ClearError()
	require.Len(t, states, 3)
	assert.False(t, states[2].HasError())
}
