package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adler/internal/adapters/mindmap"
	"adler/internal/application/commands"
)

var treeCmd = &cobra.Command{
	Use:   "tree [book]",
	Short: "Display a book's outline as a mind-map tree",
	Long: `Display the outline of a book, or of the first book, as a tree.

Example:
  adler-cli tree 3f9c2a1b`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		outline, err := commands.NewOutlineCommand(GetDoc(), ref, false).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(mindmap.View(outline, env.Log))
		return nil
	},
}

var mindmapOut string

var mindmapCmd = &cobra.Command{
	Use:   "mindmap [book]",
	Short: "Write a book's outline as an interactive HTML mind map",
	Long: `Write a standalone HTML page that draws the outline as a mind map.
Without --out the page is written to stdout.

Example:
  adler-cli mindmap 3f9c2a1b --out paideia.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		outline, err := commands.NewOutlineCommand(GetDoc(), ref, false).Execute(cmd.Context())
		if err != nil {
			return err
		}

		title := "Adler"
		if ref != "" {
			book, err := commands.NewGetBookCommand(GetDoc(), ref).Execute(cmd.Context())
			if err != nil {
				return err
			}
			title = book.Title
		} else if book, ok := GetDoc().Active(); ok {
			title = book.Title
		}

		if mindmapOut == "" {
			return mindmap.WriteHTML(os.Stdout, title, outline)
		}
		f, err := os.Create(mindmapOut)
		if err != nil {
			return err
		}
		if err := mindmap.WriteHTML(f, title, outline); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", mindmapOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(mindmapCmd)
	mindmapCmd.Flags().StringVarP(&mindmapOut, "out", "o", "", "output file")
}
