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

func newTestListModel() (*ListModel, *mockAPI) {
	api := &mockAPI{}
	return NewListModel(api, zerolog.Nop()), api
}

func TestListModel_InitialState(t *testing.T) {
	model, _ := newTestListModel()

	assert.Empty(t, model.Characters())
	assert.False(t, model.IsLoading())
	assert.False(t, model.IsLoadingMore())
	assert.True(t, model.CanLoadMore())
	assert.Empty(t, model.ErrorMessage())
	assert.Equal(t, 1, model.CurrentPage())
}

func TestListModel_FetchCharacters(t *testing.T) {
	ctx := context.Background()

	t.Run("success with next page", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nextURL(2), newCharacters(20)))

		model.FetchCharacters(ctx)

		assert.Len(t, model.Characters(), 20)
		assert.False(t, model.IsLoading())
		assert.True(t, model.CanLoadMore())
		assert.Empty(t, model.ErrorMessage())
		assert.Equal(t, 1, api.fetchCharactersCalls)
		assert.Equal(t, 1, api.lastPageRequested)
	})

	t.Run("last page disables load more", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nil, newCharacters(10)))

		model.FetchCharacters(ctx)

		assert.Len(t, model.Characters(), 10)
		assert.False(t, model.CanLoadMore())
	})

	t.Run("server error", func(t *testing.T) {
		model, api := newTestListModel()
		api.setError(rickmorty.ServerError(500))

		model.FetchCharacters(ctx)

		assert.Empty(t, model.Characters())
		assert.False(t, model.IsLoading())
		assert.Equal(t, "Server error: 500", model.ErrorMessage())
	})

	t.Run("unexpected error", func(t *testing.T) {
		model, api := newTestListModel()
		api.setError(errors.New("connection reset"))

		model.FetchCharacters(ctx)

		assert.Equal(t, MessageUnexpected, model.ErrorMessage())
		assert.False(t, model.IsLoading())
	})

	t.Run("empty response", func(t *testing.T) {
		model, _ := newTestListModel()

		model.FetchCharacters(ctx)

		assert.Equal(t, "No data received", model.ErrorMessage())
		assert.False(t, model.IsLoading())
	})

	t.Run("repeated fetch appends", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nextURL(2), newCharacters(20)))

		model.FetchCharacters(ctx)
		model.FetchCharacters(ctx)

		assert.Len(t, model.Characters(), 40)
		assert.Equal(t, 1, model.CurrentPage())
	})

	t.Run("error clears on retry", func(t *testing.T) {
		model, api := newTestListModel()
		api.setError(rickmorty.ServerError(503))
		model.FetchCharacters(ctx)
		require.NotEmpty(t, model.ErrorMessage())

		api.setPage(newPage(nil, newCharacters(5)))
		model.FetchCharacters(ctx)

		assert.Empty(t, model.ErrorMessage())
		assert.Len(t, model.Characters(), 5)
	})
}

func TestListModel_FetchCharacters_InFlightGuard(t *testing.T) {
	model, api := newTestListModel()
	api.setPage(newPage(nextURL(2), newCharacters(20)))
	api.entered = make(chan struct{})
	api.block = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		model.FetchCharacters(context.Background())
	}()

	<-api.entered
	assert.True(t, model.IsLoading())

	// Second call while the first is in flight must not reach the API
	model.FetchCharacters(context.Background())

	close(api.block)
	wg.Wait()

	characterCalls, _ := api.calls()
	assert.Equal(t, 1, characterCalls)
	assert.Len(t, model.Characters(), 20)
	assert.False(t, model.IsLoading())
}

func TestListModel_LoadMoreCharacters(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nextURL(2), newCharacters(20)))
		model.FetchCharacters(ctx)

		api.setPage(newPage(nextURL(3), newCharacters(20)))
		model.LoadMoreCharacters(ctx)

		assert.Len(t, model.Characters(), 40)
		assert.False(t, model.IsLoadingMore())
		assert.True(t, model.CanLoadMore())
		assert.Equal(t, 2, api.fetchCharactersCalls)
		assert.Equal(t, 2, api.lastPageRequested)
		assert.Equal(t, 2, model.CurrentPage())
	})

	t.Run("error keeps loaded characters", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nextURL(2), newCharacters(20)))
		model.FetchCharacters(ctx)

		api.setError(rickmorty.ErrDecoding)
		model.LoadMoreCharacters(ctx)

		assert.Len(t, model.Characters(), 20)
		assert.Equal(t, "Failed to decode data", model.ErrorMessage())
		assert.Equal(t, 1, model.CurrentPage())
		assert.False(t, model.IsLoadingMore())
		assert.True(t, model.CanLoadMore())

		// The failed page is requested again
		api.setPage(newPage(nil, newCharacters(20)))
		model.LoadMoreCharacters(ctx)
		assert.Equal(t, 2, api.lastPageRequested)
		assert.Len(t, model.Characters(), 40)
		assert.False(t, model.CanLoadMore())
	})

	t.Run("no-op without more pages", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nil, newCharacters(10)))
		model.FetchCharacters(ctx)
		require.Equal(t, 1, api.fetchCharactersCalls)

		model.LoadMoreCharacters(ctx)

		assert.Equal(t, 1, api.fetchCharactersCalls)
		assert.Len(t, model.Characters(), 10)
	})

	t.Run("walks pages until the end", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nextURL(2), newCharacters(20)))
		model.FetchCharacters(ctx)

		model.LoadMoreCharacters(ctx)
		model.LoadMoreCharacters(ctx)
		api.setPage(newPage(nil, newCharacters(6)))
		model.LoadMoreCharacters(ctx)
		model.LoadMoreCharacters(ctx)

		assert.Equal(t, 4, api.fetchCharactersCalls)
		assert.Equal(t, 4, api.lastPageRequested)
		assert.Equal(t, 4, model.CurrentPage())
		assert.Len(t, model.Characters(), 66)
	})
}

func TestListModel_LoadMoreCharacters_InFlightGuard(t *testing.T) {
	model, api := newTestListModel()
	api.setPage(newPage(nextURL(2), newCharacters(20)))
	model.FetchCharacters(context.Background())

	api.entered = make(chan struct{})
	api.block = make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		model.LoadMoreCharacters(context.Background())
	}()

	<-api.entered
	assert.True(t, model.IsLoadingMore())
	model.LoadMoreCharacters(context.Background())

	close(api.block)
	wg.Wait()

	characterCalls, _ := api.calls()
	assert.Equal(t, 2, characterCalls)
	assert.Len(t, model.Characters(), 40)
	assert.Equal(t, 2, model.CurrentPage())
}

func TestListModel_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("clears characters and refetches first page", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nextURL(2), newCharacters(20)))
		model.FetchCharacters(ctx)
		model.LoadMoreCharacters(ctx)
		require.Len(t, model.Characters(), 40)

		model.Refresh(ctx)

		assert.Equal(t, 3, api.fetchCharactersCalls)
		assert.Equal(t, 1, api.lastPageRequested)
		assert.Len(t, model.Characters(), 20)
		assert.Equal(t, 1, model.CurrentPage())
	})

	t.Run("resets load more", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nil, newCharacters(10)))
		model.FetchCharacters(ctx)
		require.False(t, model.CanLoadMore())

		api.setPage(newPage(nextURL(2), newCharacters(20)))
		model.Refresh(ctx)

		assert.True(t, model.CanLoadMore())
		assert.Len(t, model.Characters(), 20)
	})

	t.Run("failed refresh leaves an empty list", func(t *testing.T) {
		model, api := newTestListModel()
		api.setPage(newPage(nil, newCharacters(10)))
		model.FetchCharacters(ctx)

		api.setError(rickmorty.ServerError(502))
		model.Refresh(ctx)

		assert.Empty(t, model.Characters())
		assert.True(t, model.CanLoadMore())
		assert.Equal(t, "Server error: 502", model.ErrorMessage())
	})
}

func TestListModel_Subscribe(t *testing.T) {
	model, api := newTestListModel()
	api.setPage(newPage(nextURL(2), newCharacters(3)))

	var states []ListState
	unsubscribe := model.Subscribe(func(s ListState) {
		states = append(states, s)
	})

	model.FetchCharacters(context.Background())

	require.Len(t, states, 2)
	assert.True(t, states[0].IsLoading)
	assert.Empty(t, states[0].Characters)
	assert.False(t, states[1].IsLoading)
	assert.Len(t, states[1].Characters, 3)
	assert.Equal(t, 1, states[1].Page)

	unsubscribe()
	unsubscribe()
	model.LoadMoreCharacters(context.Background())
	assert.Len(t, states, 2)
}

func TestListModel_ClearError(t *testing.T) {
	model, api := newTestListModel()
	api.setError(rickmorty.ServerError(500))
	model.FetchCharacters(context.Background())
	require.True(t, model.State().HasError())

	model.ClearError()

	assert.False(t, model.State().HasError())
}

func TestListModel_StateIsSnapshot(t *testing.T) {
	model, api := newTestListModel()
	api.setPage(newPage(nextURL(2), newCharacters(2)))
	model.FetchCharacters(context.Background())

	state := model.State()
	state.Characters[0].Name = "Mutated"

	assert.Equal(t, "Character 1", model.Characters()[0].Name)
}
