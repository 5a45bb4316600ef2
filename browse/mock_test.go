package browse

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/s0up4200/rickdex/rickmorty"
)

// mockAPI implements rickmorty.API for testing
type mockAPI struct {
	mu sync.Mutex

	page          *rickmorty.CharacterPage
	episodes      []rickmorty.Episode
	characters    map[int]*rickmorty.Character
	err           error
	characterErrs map[int]error

	// When set, page and episode calls signal entered and then wait on block
	entered chan struct{}
	block   chan struct{}

	// Track calls for verification
	fetchCharactersCalls int
	lastPageRequested    int
	fetchEpisodesCalls   int
	lastEpisodeIDs       []int
	fetchCharacterCalls  int
}

func (m *mockAPI) FetchCharacterPage(ctx context.Context, page int) (*rickmorty.CharacterPage, error) {
	m.mu.Lock()
	m.fetchCharactersCalls++
	m.lastPageRequested = page
	response, err := m.page, m.err
	m.mu.Unlock()

	m.wait()

	if err != nil {
		return nil, err
	}
	return response, nil
}

func (m *mockAPI) FetchEpisodes(ctx context.Context, ids []int) ([]rickmorty.Episode, error) {
	m.mu.Lock()
	m.fetchEpisodesCalls++
	m.lastEpisodeIDs = slices.Clone(ids)
	episodes, err := m.episodes, m.err
	m.mu.Unlock()

	m.wait()

	if err != nil {
		return nil, err
	}
	return episodes, nil
}

func (m *mockAPI) FetchCharacter(ctx context.Context, id int) (*rickmorty.Character, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCharacterCalls++

	if err, ok := m.characterErrs[id]; ok {
		return nil, err
	}
	if character, ok := m.characters[id]; ok {
		return character, nil
	}
	return nil, rickmorty.ServerError(404)
}

func (m *mockAPI) wait() {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
}

func (m *mockAPI) setPage(page *rickmorty.CharacterPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = page
	m.err = nil
}

func (m *mockAPI) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockAPI) calls() (characters, episodes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCharactersCalls, m.fetchEpisodesCalls
}

func newCharacter(id int, episodes ...string) rickmorty.Character {
	return rickmorty.Character{
		ID:       id,
		Name:     fmt.Sprintf("Character %d", id),
		Status:   "Alive",
		Species:  "Human",
		Gender:   "Male",
		Origin:   rickmorty.Location{Name: "Earth (C-137)", URL: "https://rickandmortyapi.com/api/location/1"},
		Location: rickmorty.Location{Name: "Citadel of Ricks", URL: "https://rickandmortyapi.com/api/location/3"},
		Episode:  episodes,
		URL:      fmt.Sprintf("https://rickandmortyapi.com/api/character/%d", id),
		Created:  "2017-11-04T18:48:46.250Z",
	}
}

func newCharacters(count int) []rickmorty.Character {
	characters := make([]rickmorty.Character, count)
	for i := range characters {
		characters[i] = newCharacter(i+1, "https://rickandmortyapi.com/api/episode/1")
	}
	return characters
}

func newEpisodes(count int) []rickmorty.Episode {
	episodes := make([]rickmorty.Episode, count)
	for i := range episodes {
		episodes[i] = rickmorty.Episode{
			ID:      i + 1,
			Name:    fmt.Sprintf("Episode %d", i+1),
			AirDate: "December 2, 2013",
			Episode: fmt.Sprintf("S01E%02d", i+1),
		}
	}
	return episodes
}

func nextURL(page int) *string {
	u := fmt.Sprintf("https://rickandmortyapi.com/api/character?page=%d", page)
	return &u
}

func newPage(next *string, results []rickmorty.Character) *rickmorty.CharacterPage {
	return &rickmorty.CharacterPage{
		Info:    rickmorty.PageInfo{Count: 826, Pages: 42, Next: next},
		Results: results,
	}
}
