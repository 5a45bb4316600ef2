package browse

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/s0up4200/rickdex/rickmorty"
)

// ListState is a snapshot of a ListModel
type ListState struct {
	Characters    []rickmorty.Character
	IsLoading     bool
	IsLoadingMore bool
	CanLoadMore   bool
	ErrorMessage  string
	Page          int
}

// HasError reports whether the last operation failed
func (s ListState) HasError() bool {
	return s.ErrorMessage != ""
}

// ListModel accumulates pages of characters.
// The page cursor only ever advances by one from the last page that loaded successfully.
type ListModel struct {
	api    rickmorty.API
	logger zerolog.Logger

	mu            sync.Mutex
	characters    []rickmorty.Character
	isLoading     bool
	isLoadingMore bool
	canLoadMore   bool
	errorMessage  string
	currentPage   int

	listeners listeners[ListState]
}

// NewListModel creates an empty list model
func NewListModel(api rickmorty.API, logger zerolog.Logger) *ListModel {
	return &ListModel{
		api:         api,
		logger:      logger,
		characters:  []rickmorty.Character{},
		canLoadMore: true,
		currentPage: 1,
	}
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func unsubscribes.
func (m *ListModel) Subscribe(fn func(ListState)) func() {
	return m.listeners.add(fn)
}

// State returns a snapshot of the current state
func (m *ListModel) State() ListState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Characters returns the accumulated characters
func (m *ListModel) Characters() []rickmorty.Character {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.characters)
}

// IsLoading reports whether a first-page load is in flight
func (m *ListModel) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isLoading
}

// IsLoadingMore reports whether a next-page load is in flight
func (m *ListModel) IsLoadingMore() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isLoadingMore
}

// CanLoadMore reports whether the server advertised another page
func (m *ListModel) CanLoadMore() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canLoadMore
}

// ErrorMessage returns the display text of the last failure, or ""
func (m *ListModel) ErrorMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorMessage
}

// CurrentPage returns the last page that loaded successfully
func (m *ListModel) CurrentPage() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentPage
}

// ClearError dismisses the current error message
func (m *ListModel) ClearError() {
	m.update(func() {
		m.errorMessage = ""
	})
}

// FetchCharacters loads the first page and appends it to the list.
// It is a no-op while a first-page load is already in flight.
func (m *ListModel) FetchCharacters(ctx context.Context) {
	if !m.begin(func() bool {
		if m.isLoading {
			return false
		}
		m.isLoading = true
		return true
	}) {
		m.logger.Debug().Msg("Character fetch already in progress")
		return
	}

	var (
		page *rickmorty.CharacterPage
		err  = errInterrupted
	)
	defer m.update(func() {
		m.isLoading = false
		if err != nil {
			m.errorMessage = displayMessage(err, MessageUnexpected)
			return
		}
		m.characters = append(m.characters, page.Results...)
		m.currentPage = 1
		m.canLoadMore = page.Info.HasNext()
		m.logPage(1, page)
	})

	page, err = m.api.FetchCharacterPage(ctx, 1)
	if err == nil && page == nil {
		err = rickmorty.ErrData
	}
	if err != nil {
		m.logger.Warn().Err(err).Int("page", 1).Msg("Failed to fetch characters")
	}
}

// LoadMoreCharacters loads the page after the current one and appends it.
// It is a no-op while a next-page load is in flight or when no further page exists.
func (m *ListModel) LoadMoreCharacters(ctx context.Context) {
	var nextPage int
	if !m.begin(func() bool {
		if m.isLoadingMore || !m.canLoadMore {
			return false
		}
		m.isLoadingMore = true
		nextPage = m.currentPage + 1
		return true
	}) {
		return
	}

	var (
		page *rickmorty.CharacterPage
		err  = errInterrupted
	)
	defer m.update(func() {
		m.isLoadingMore = false
		if err != nil {
			m.errorMessage = displayMessage(err, MessageUnexpected)
			return
		}
		m.characters = append(m.characters, page.Results...)
		m.currentPage = nextPage
		m.canLoadMore = page.Info.HasNext()
		m.logPage(nextPage, page)
	})

	page, err = m.api.FetchCharacterPage(ctx, nextPage)
	if err == nil && page == nil {
		err = rickmorty.ErrData
	}
	if err != nil {
		m.logger.Warn().Err(err).Int("page", nextPage).Msg("Failed to load more characters")
	}
}

// Refresh discards everything loaded so far and fetches the first page again
func (m *ListModel) Refresh(ctx context.Context) {
	m.update(func() {
		m.characters = []rickmorty.Character{}
		m.currentPage = 1
		m.canLoadMore = true
	})

	m.FetchCharacters(ctx)
}

// begin runs guard under the lock and, when it accepts, clears the error and publishes the busy state
func (m *ListModel) begin(guard func() bool) bool {
	m.mu.Lock()
	if !guard() {
		m.mu.Unlock()
		return false
	}
	m.errorMessage = ""
	state := m.snapshotLocked()
	m.mu.Unlock()

	m.listeners.notify(state)
	return true
}

// update applies fn under the lock and publishes the resulting state
func (m *ListModel) update(fn func()) {
	m.mu.Lock()
	fn()
	state := m.snapshotLocked()
	m.mu.Unlock()

	m.listeners.notify(state)
}

func (m *ListModel) snapshotLocked() ListState {
	return ListState{
		Characters:    slices.Clone(m.characters),
		IsLoading:     m.isLoading,
		IsLoadingMore: m.isLoadingMore,
		CanLoadMore:   m.canLoadMore,
		ErrorMessage:  m.errorMessage,
		Page:          m.currentPage,
	}
}

// logPage must be called with the lock held
func (m *ListModel) logPage(pageNumber int, page *rickmorty.CharacterPage) {
	m.logger.Debug().
		Int("page", pageNumber).
		Int("count", len(page.Results)).
		Int("total", len(m.characters)).
		Bool("can_load_more", m.canLoadMore).
		Msg("Loaded characters")
}
