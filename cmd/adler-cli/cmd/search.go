package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"adler/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search books, chapters, terms and propositions",
	Long: `Search book titles, chapter titles, terms and propositions.

Results are ranked by relevance using fuzzy matching.

Examples:
  adler-cli search arete
  adler-cli search "virtude ensinada"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := commands.NewSearchCommand(GetDoc(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("[%s] %s %s  %s\n", r.Kind, commands.ShortID(r.BookID), searchLocation(r), r.Text)
		}
		return nil
	},
}

// searchLocation formats the 1-based chapter and entry of a hit
func searchLocation(r commands.SearchResult) string {
	switch {
	case r.ChapterIndex < 0:
		return "-"
	case r.EntryIndex < 0:
		return fmt.Sprintf("%d", r.ChapterIndex+1)
	default:
		return fmt.Sprintf("%d.%d", r.ChapterIndex+1, r.EntryIndex+1)
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
