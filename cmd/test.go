package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the Rick and Morty API",
	Long:  `Test the connection to the configured API and display basic information.`,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Testing connection to %s...\n", client.BaseURL())

	if err := client.TestConnection(ctx); err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	// Get some basic stats
	page, err := client.FetchCharacterPage(ctx, 1)
	if err != nil {
		return fmt.Errorf("failed to get characters: %w", err)
	}

	fmt.Fprintf(out, "\nAPI Statistics:\n")
	fmt.Fprintf(out, "- Total characters: %d\n", page.Info.Count)
	fmt.Fprintf(out, "- Total pages: %d\n", page.Info.Pages)
	fmt.Fprintf(out, "- Characters per page: %d\n", len(page.Results))

	return nil
}
