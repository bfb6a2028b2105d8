package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adler/internal/adapters/editor"
	"adler/internal/application/commands"
	"adler/internal/domain"
)

var chapterCmd = &cobra.Command{
	Use:     "chapter",
	Aliases: []string{"ch"},
	Short:   "Manage a book's chapters",
	Long: `Add, edit, reorder and delete chapters. Positions start at 1.

Examples:
  adler-cli chapter add 3f9c2a1b "Areté"
  adler-cli chapter rename 3f9c2a1b 2 "Logos"
  adler-cli chapter move 3f9c2a1b 3 1
  adler-cli chapter reorder 3f9c2a1b 2 3 1
  adler-cli chapter delete 3f9c2a1b 2`,
}

var chapterAddCmd = &cobra.Command{
	Use:   "add <book> [title]",
	Short: "Append a chapter",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title string
		if len(args) == 2 {
			title = args[1]
		}
		result, err := commands.NewAddChapterCommand(GetDoc(), args[0], title).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var chapterRenameCmd = &cobra.Command{
	Use:   "rename <book> <chapter> <title>",
	Short: "Set a chapter's title",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ci, err := parsePosition(args[1], "chapter")
		if err != nil {
			return err
		}
		result, err := commands.NewRenameChapterCommand(GetDoc(), args[0], ci, args[2]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var chapterDescribeEdit bool

var chapterDescribeCmd = &cobra.Command{
	Use:   "describe <book> <chapter> [text]",
	Short: "Set a chapter's description",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		doc := GetDoc()
		ci, err := parsePosition(args[1], "chapter")
		if err != nil {
			return err
		}

		var text string
		switch {
		case chapterDescribeEdit:
			book, err := commands.NewGetBookCommand(doc, args[0]).Execute(ctx)
			if err != nil {
				return err
			}
			if ci >= len(book.Chapters) {
				return fmt.Errorf("chapter %d does not exist", ci+1)
			}
			text, err = editor.Edit(editor.NewOpener(env.Config.Editor), book.Chapters[ci].Description)
			if err != nil {
				return err
			}
		case len(args) == 3:
			text = args[2]
		default:
			return fmt.Errorf("give the description text or use --edit")
		}

		result, err := commands.NewDescribeChapterCommand(doc, args[0], ci, text).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var chapterMoveCmd = &cobra.Command{
	Use:   "move <book> <from> <to>",
	Short: "Move a chapter to a new position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parsePosition(args[1], "chapter")
		if err != nil {
			return err
		}
		to, err := parsePosition(args[2], "target")
		if err != nil {
			return err
		}
		result, err := commands.NewMoveChapterCommand(GetDoc(), args[0], from, to).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var chapterReorderCmd = &cobra.Command{
	Use:   "reorder <book> <chapter>...",
	Short: "Apply a complete chapter order",
	Long: `Replace the chapter order with the given one. Every chapter must be
listed exactly once, by current position or by chapter ID.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewReorderChaptersCommand(GetDoc(), args[0], args[1:]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var chapterDeleteYes bool

var chapterDeleteCmd = &cobra.Command{
	Use:   "delete <book> <chapter>",
	Short: "Delete a chapter with its terms and propositions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		doc := GetDoc()
		ci, err := parsePosition(args[1], "chapter")
		if err != nil {
			return err
		}

		book, err := commands.NewGetBookCommand(doc, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		if ci >= len(book.Chapters) {
			return fmt.Errorf("chapter %d does not exist", ci+1)
		}
		what := fmt.Sprintf("chapter %q", domain.ChapterHeading(book.Chapters[ci], ci))
		ok, err := confirmDelete(what, chapterDeleteYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}

		result, err := commands.NewDeleteChapterCommand(doc, book.ID, ci).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chapterCmd)
	chapterCmd.AddCommand(chapterAddCmd)
	chapterCmd.AddCommand(chapterRenameCmd)
	chapterCmd.AddCommand(chapterDescribeCmd)
	chapterCmd.AddCommand(chapterMoveCmd)
	chapterCmd.AddCommand(chapterReorderCmd)
	chapterCmd.AddCommand(chapterDeleteCmd)

	chapterDescribeCmd.Flags().BoolVarP(&chapterDescribeEdit, "edit", "e", false, "edit the description in $EDITOR")
	chapterDeleteCmd.Flags().BoolVarP(&chapterDeleteYes, "yes", "y", false, "delete without asking")
}
