package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hymnJSON bool

var hymnCmd = &cobra.Command{
	Use:   "hymn",
	Short: "Browse the hymnal index",
}

var hymnListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all hymns",
	Args:  cobra.NoArgs,
	RunE:  runHymnList,
}

func init() {
	hymnListCmd.Flags().BoolVar(&hymnJSON, "json", false, "output as JSON")
	hymnCmd.AddCommand(hymnListCmd)
	rootCmd.AddCommand(hymnCmd)
}

func runHymnList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	hymns, err := recordService.Hymns(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list hymns: %w", err)
	}

	if hymnJSON {
		type hymnInfo struct {
			Ref   string `json:"ref"`
			Title string `json:"title"`
		}
		infos := make([]hymnInfo, len(hymns))
		for i := range hymns {
			infos[i] = hymnInfo{Ref: hymns[i].Ref, Title: hymns[i].Title}
		}
		return printJSON(cmd, infos)
	}

	for i := range hymns {
		cmd.Println(hymns[i].String())
	}
	return nil
}
