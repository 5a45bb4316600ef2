package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/rickdex/browse"
	"github.com/s0up4200/rickdex/filter"
)

var (
	pages    int
	allPages bool
)

// charactersCmd represents the characters command
var charactersCmd = &cobra.Command{
	Use:     "characters",
	Aliases: []string{"list"},
	Short:   "List characters matching the filter criteria",
	Long: `Load one or more pages of characters and list those matching the filter.

Examples:
  rickdex characters --pages 3
  rickdex characters --all --filter 'statusIs("alive") and Species == "Human"'
  rickdex list --filter 'hasSubstr(Origin, "earth") and EpisodeCount > 10'
  rickdex list --preset pilot`,
	RunE: runCharacters,
}

func init() {
	rootCmd.AddCommand(charactersCmd)

	charactersCmd.Flags().IntVar(&pages, "pages", 0, "number of pages to load (default from config)")
	charactersCmd.Flags().BoolVar(&allPages, "all", false, "load every page")
	charactersCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	charactersCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runCharacters(cmd *cobra.Command, args []string) error {
	match, expr, err := resolveFilter()
	if err != nil {
		return err
	}

	if pages <= 0 {
		pages = cfg.Browse.Pages
	}

	logger.Info().
		Str("filter", expr).
		Int("pages", pages).
		Bool("all", allPages).
		Msg("Loading characters")

	model := browse.NewListModel(client, logger)
	if err := loadPages(cmd.Context(), model, pages, allPages); err != nil {
		return err
	}

	state := model.State()
	matches := filter.Apply(match, state.Characters)

	formatter := browse.NewConsoleFormatter()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\nFound %d of %d loaded characters:\n", len(matches), len(state.Characters))
	fmt.Fprintln(out, formatter.FormatCharacterList(matches, browse.FormatOptions{
		ShowDetails: cfg.Browse.ShowDetails,
	}))
	fmt.Fprintln(out, formatter.FormatListStatus(state))

	return nil
}

// loadPages fetches the first page and then keeps loading until count pages
// are loaded, or every page when all is set
func loadPages(ctx context.Context, model *browse.ListModel, count int, all bool) error {
	model.FetchCharacters(ctx)
	if msg := model.ErrorMessage(); msg != "" {
		return fmt.Errorf("failed to load characters: %s", msg)
	}

	for loaded := 1; (all || loaded < count) && model.CanLoadMore(); loaded++ {
		model.LoadMoreCharacters(ctx)
		if msg := model.ErrorMessage(); msg != "" {
			return fmt.Errorf("failed to load page %d: %s", model.CurrentPage()+1, msg)
		}
	}

	return nil
}
