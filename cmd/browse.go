package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/rickdex/browse"
	"github.com/s0up4200/rickdex/rickmorty"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse characters interactively",
	Long: `Start an interactive session that loads characters page by page.

Commands:
  m, more      load the next page
  r, refresh   reload from the first page
  <id>         show a character and its episodes
  h, help      show this help
  q, quit      exit`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	b := newBrowser(client, logger, cmd.InOrStdin(), cmd.OutOrStdout(), browse.FormatOptions{
		ShowDetails: cfg.Browse.ShowDetails,
	})
	return b.run(cmd.Context())
}

// browser drives a ListModel from line-based input and renders on state changes
type browser struct {
	api       rickmorty.API
	list      *browse.ListModel
	logger    zerolog.Logger
	in        io.Reader
	out       io.Writer
	formatter *browse.ConsoleFormatter
	options   browse.FormatOptions

	busy  bool
	shown int
}

func newBrowser(api rickmorty.API, logger zerolog.Logger, in io.Reader, out io.Writer, options browse.FormatOptions) *browser {
	return &browser{
		api:       api,
		list:      browse.NewListModel(api, logger),
		logger:    logger,
		in:        in,
		out:       out,
		formatter: browse.NewConsoleFormatter(),
		options:   options,
	}
}

func (b *browser) run(ctx context.Context) error {
	unsubscribe := b.list.Subscribe(b.onListChange)
	defer unsubscribe()

	b.list.FetchCharacters(ctx)
	b.list.ClearError()

	scanner := bufio.NewScanner(b.in)
	b.prompt()
	for scanner.Scan() {
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch input {
		case "":
		case "q", "quit":
			return nil
		case "h", "help":
			b.help()
		case "m", "more":
			if !b.list.CanLoadMore() {
				fmt.Fprintln(b.out, "No more characters to load")
				break
			}
			b.list.LoadMoreCharacters(ctx)
		case "r", "refresh":
			b.list.Refresh(ctx)
		default:
			id, err := strconv.Atoi(input)
			if err != nil || id <= 0 {
				fmt.Fprintf(b.out, "Unknown command: %s (h for help)\n", input)
				break
			}
			b.showDetail(ctx, id)
		}

		// Errors are shown once, then dismissed
		b.list.ClearError()
		b.prompt()
	}

	return scanner.Err()
}

// onListChange renders newly loaded characters once a load finishes
func (b *browser) onListChange(state browse.ListState) {
	if state.IsLoading || state.IsLoadingMore {
		if !b.busy {
			b.busy = true
			fmt.Fprintln(b.out, b.formatter.FormatListStatus(state))
		}
		return
	}
	if len(state.Characters) < b.shown {
		b.shown = 0
	}
	if !b.busy {
		return
	}
	b.busy = false

	if !state.HasError() && len(state.Characters) > b.shown {
		fmt.Fprintln(b.out, b.formatter.FormatCharacterList(state.Characters[b.shown:], b.options))
		b.shown = len(state.Characters)
	}
	fmt.Fprintln(b.out, b.formatter.FormatListStatus(state))
}

// showDetail opens a character from the loaded list, fetching it when not loaded yet
func (b *browser) showDetail(ctx context.Context, id int) {
	character, ok := b.findCharacter(id)
	if !ok {
		fetched, err := b.api.FetchCharacter(ctx, id)
		if err == nil && fetched == nil {
			err = rickmorty.ErrData
		}
		if err != nil {
			b.logger.Warn().Err(err).Int("character_id", id).Msg("Failed to fetch character")
			fmt.Fprintf(b.out, "⚠  Character %d: %v\n", id, err)
			return
		}
		character = *fetched
	}

	detail := browse.NewDetailModel(character, b.api, b.logger)
	unsubscribe := detail.Subscribe(func(state browse.DetailState) {
		if state.IsLoadingEpisodes {
			return
		}
		fmt.Fprint(b.out, b.formatter.FormatCharacterDetail(state))
	})
	defer unsubscribe()

	detail.FetchEpisodes(ctx)
}

func (b *browser) findCharacter(id int) (rickmorty.Character, bool) {
	for _, character := range b.list.Characters() {
		if character.ID == id {
			return character, true
		}
	}
	return rickmorty.Character{}, false
}

func (b *browser) prompt() {
	fmt.Fprint(b.out, "\n[m]ore, [r]efresh, <id> details, [q]uit > ")
}

func (b *browser) help() {
	fmt.Fprintln(b.out, "m, more      load the next page")
	fmt.Fprintln(b.out, "r, refresh   reload from the first page")
	fmt.Fprintln(b.out, "<id>         show a character and its episodes")
	fmt.Fprintln(b.out, "q, quit      exit")
}
