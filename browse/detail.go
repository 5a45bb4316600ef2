package browse

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/s0up4200/rickdex/rickmorty"
)

// DetailState is a snapshot of a DetailModel
type DetailState struct {
	Character         rickmorty.Character
	Episodes          []rickmorty.Episode
	IsLoadingEpisodes bool
	ErrorMessage      string
}

// HasError reports whether the last fetch failed
func (s DetailState) HasError() bool {
	return s.ErrorMessage != ""
}

// DetailModel lazily loads the episodes of one character
type DetailModel struct {
	character rickmorty.Character
	api       rickmorty.API
	logger    zerolog.Logger

	mu                sync.Mutex
	episodes          []rickmorty.Episode
	isLoadingEpisodes bool
	errorMessage      string

	listeners listeners[DetailState]
}

// NewDetailModel creates a detail model for character
func NewDetailModel(character rickmorty.Character, api rickmorty.API, logger zerolog.Logger) *DetailModel {
	return &DetailModel{
		character: character,
		api:       api,
		logger:    logger.With().Int("character_id", character.ID).Logger(),
		episodes:  []rickmorty.Episode{},
	}
}

// Character returns the character this model was created with
func (m *DetailModel) Character() rickmorty.Character {
	return m.character
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func unsubscribes.
func (m *DetailModel) Subscribe(fn func(DetailState)) func() {
	return m.listeners.add(fn)
}

// State returns a snapshot of the current state
func (m *DetailModel) State() DetailState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Episodes returns the loaded episodes
func (m *DetailModel) Episodes() []rickmorty.Episode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.episodes)
}

// IsLoadingEpisodes reports whether an episode fetch is in flight
func (m *DetailModel) IsLoadingEpisodes() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isLoadingEpisodes
}

// ErrorMessage returns the display text of the last failure, or ""
func (m *DetailModel) ErrorMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorMessage
}

// ClearError dismisses the current error message
func (m *DetailModel) ClearError() {
	m.update(func() {
		m.errorMessage = ""
	})
}

// FetchEpisodes loads the episodes referenced by the character.
// It is a no-op while a fetch is in flight. A character without parseable
// episode URLs fails locally without calling the API.
func (m *DetailModel) FetchEpisodes(ctx context.Context) {
	m.mu.Lock()
	if m.isLoadingEpisodes {
		m.mu.Unlock()
		return
	}
	m.isLoadingEpisodes = true
	m.errorMessage = ""
	state := m.snapshotLocked()
	m.mu.Unlock()
	m.listeners.notify(state)

	ids := m.character.EpisodeIDs()
	if len(ids) == 0 {
		m.update(func() {
			m.isLoadingEpisodes = false
			m.errorMessage = MessageNoEpisodes
		})
		return
	}

	var (
		episodes []rickmorty.Episode
		err      = errInterrupted
	)
	defer m.update(func() {
		m.isLoadingEpisodes = false
		if err != nil {
			m.errorMessage = displayMessage(err, MessageEpisodesFailed)
			return
		}
		m.episodes = episodes
	})

	episodes, err = m.api.FetchEpisodes(ctx, ids)
	if err != nil {
		m.logger.Warn().Err(err).Ints("episode_ids", ids).Msg("Failed to fetch episodes")
		return
	}

	m.logger.Debug().Int("count", len(episodes)).Msg("Loaded episodes")
}

// update applies fn under the lock and publishes the resulting state
func (m *DetailModel) update(fn func()) {
	m.mu.Lock()
	fn()
	state := m.snapshotLocked()
	m.mu.Unlock()

	m.listeners.notify(state)
}

func (m *DetailModel) snapshotLocked() DetailState {
	return DetailState{
		Character:         m.character,
		Episodes:          slices.Clone(m.episodes),
		IsLoadingEpisodes: m.isLoadingEpisodes,
		ErrorMessage:      m.errorMessage,
	}
}
