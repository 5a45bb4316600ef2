package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the filter presets defined in config",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	list := presets.Presets()
	if len(list) == 0 {
		fmt.Fprintln(out, "No presets configured. Add them under filter.presets in config.")
		return nil
	}

	for _, p := range list {
		fmt.Fprintf(out, "• %s\n", p.Name)
		if p.Description != "" {
			fmt.Fprintf(out, "  %s\n", p.Description)
		}
		fmt.Fprintf(out, "  %s\n", p.Expression)
	}
	return nil
}
