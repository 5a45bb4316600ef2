package browse

import (
	"fmt"
	"strings"

	"github.com/s0up4200/rickdex/rickmorty"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
}

// ConsoleFormatter provides console output formatting for characters and episodes
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatCharacterList formats a list of characters for console display
func (f *ConsoleFormatter) FormatCharacterList(characters []rickmorty.Character, options FormatOptions) string {
	if len(characters) == 0 {
		return "No characters found"
	}

	var sb strings.Builder

	sb.WriteString("\nCharacter")
	if len(characters) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(characters))

	for i, character := range characters {
		isLast := i == len(characters)-1
		f.formatCharacter(&sb, character, isLast, options)
	}

	return sb.String()
}

// formatCharacter writes a single tree entry
func (f *ConsoleFormatter) formatCharacter(sb *strings.Builder, character rickmorty.Character, isLast bool, options FormatOptions) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	fmt.Fprintf(sb, "%s── #%d %s [%s]\n", prefix, character.ID, character.Name, statusLabel(character.Status))

	if !options.ShowDetails {
		return
	}

	fmt.Fprintf(sb, "%s%s", indent, character.Species)
	if character.Type != "" {
		fmt.Fprintf(sb, " (%s)", character.Type)
	}
	if character.Gender != "" {
		fmt.Fprintf(sb, ", %s", character.Gender)
	}
	sb.WriteString("\n")
	if character.Origin.Name != "" {
		fmt.Fprintf(sb, "%sOrigin: %s\n", indent, character.Origin.Name)
	}
	if character.Location.Name != "" {
		fmt.Fprintf(sb, "%sLocation: %s\n", indent, character.Location.Name)
	}
	fmt.Fprintf(sb, "%sEpisodes: %d\n", indent, len(character.Episode))
}

// FormatCharacterDetail formats a character with its episodes
func (f *ConsoleFormatter) FormatCharacterDetail(state DetailState) string {
	var sb strings.Builder
	character := state.Character

	fmt.Fprintf(&sb, "\n%s (#%d)\n", character.Name, character.ID)
	fmt.Fprintf(&sb, "  Status:  %s\n", statusLabel(character.Status))
	fmt.Fprintf(&sb, "  Species: %s\n", character.Species)
	fmt.Fprintf(&sb, "  Gender:  %s\n", character.Gender)
	if character.Origin.Name != "" {
		fmt.Fprintf(&sb, "  Origin:  %s\n", character.Origin.Name)
	}
	if character.Location.Name != "" {
		fmt.Fprintf(&sb, "  Location: %s\n", character.Location.Name)
	}

	fmt.Fprintf(&sb, "\nFeatured in %d Episode", len(state.Episodes))
	if len(state.Episodes) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n")

	switch {
	case state.IsLoadingEpisodes:
		sb.WriteString("  Loading episodes...\n")
	case len(state.Episodes) == 0:
		sb.WriteString("  No episodes available\n")
	default:
		for i, episode := range state.Episodes {
			prefix := "├"
			if i == len(state.Episodes)-1 {
				prefix = "╰"
			}
			fmt.Fprintf(&sb, "%s── %s  %s", prefix, episode.Episode, episode.Name)
			if episode.AirDate != "" {
				fmt.Fprintf(&sb, " (%s)", episode.AirDate)
			}
			sb.WriteString("\n")
		}
	}

	if state.HasError() {
		fmt.Fprintf(&sb, "\n⚠  %s\n", state.ErrorMessage)
	}

	return sb.String()
}

// FormatListStatus formats a one-line summary of the list state
func (f *ConsoleFormatter) FormatListStatus(state ListState) string {
	switch {
	case state.IsLoading:
		return "Loading characters..."
	case state.IsLoadingMore:
		return fmt.Sprintf("Loading page %d...", state.Page+1)
	case state.HasError():
		return fmt.Sprintf("⚠  %s", state.ErrorMessage)
	case state.CanLoadMore:
		return fmt.Sprintf("%d characters loaded (page %d), more available", len(state.Characters), state.Page)
	default:
		return fmt.Sprintf("%d characters loaded (page %d), end of list", len(state.Characters), state.Page)
	}
}

// statusLabel normalizes the free-text status for display
func statusLabel(status string) string {
	if status == "" {
		return "unknown"
	}
	return status
}
