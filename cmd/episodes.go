package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/rickdex/browse"
)

var concurrency int

// episodesCmd represents the episodes command
var episodesCmd = &cobra.Command{
	Use:   "episodes <character-id>...",
	Short: "Show the episodes each character appears in",
	Long: `Fetch one or more characters by ID and list the episodes they are featured in.
Characters are loaded concurrently; a failure for one ID does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEpisodes,
}

func init() {
	rootCmd.AddCommand(episodesCmd)

	episodesCmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "number of characters to fetch at once (default from config)")
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	if concurrency <= 0 {
		concurrency = cfg.Browse.Concurrency
	}

	results, err := browse.LoadDetails(cmd.Context(), client, ids, concurrency, logger)
	if err != nil {
		return err
	}

	formatter := browse.NewConsoleFormatter()
	out := cmd.OutOrStdout()

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(out, "✗ Character %d: %v\n\n", result.CharacterID, result.Err)
			continue
		}
		fmt.Fprintln(out, formatter.FormatCharacterDetail(result.Detail.State()))
	}

	if failed == len(results) {
		return fmt.Errorf("failed to load any of %d characters", len(results))
	}
	return nil
}

// parseIDs converts positional arguments to positive character IDs
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid character ID: %s", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
