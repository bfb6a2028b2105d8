package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adler/internal/adapters/editor"
	"adler/internal/application/commands"
	"adler/internal/domain"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage books",
	Long: `List, create, edit and delete books.

Examples:
  adler-cli book list
  adler-cli book create "Paideia"
  adler-cli book rename 3f9c2a1b "Paideia, vol. I"
  adler-cli book describe 3f9c2a1b --edit
  adler-cli book type 3f9c2a1b pratico
  adler-cli book delete 3f9c2a1b`,
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := commands.NewListBooksCommand(GetDoc()).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(books) == 0 {
			fmt.Println("No books")
			return nil
		}
		for _, b := range books {
			fmt.Printf("%s  %-8s  %2d ch  %s\n", commands.ShortID(b.ID), b.Type, len(b.Chapters), b.Title)
		}
		return nil
	},
}

var bookShowCmd = &cobra.Command{
	Use:   "show <book>",
	Short: "Show a book with numbered chapters and entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := commands.NewGetBookCommand(GetDoc(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s [%s]\n", book.ID, book.Title, book.Type)
		if book.Description != "" {
			fmt.Printf("  %s\n", book.Description)
		}
		for i, ch := range book.Chapters {
			fmt.Printf("%d. %s\n", i+1, domain.ChapterHeading(ch, i))
			for j, d := range ch.Definitions {
				fmt.Printf("   t%d  %s: %s\n", j+1, domain.TermLabel(d, j), d.Definicao)
			}
			for j, p := range ch.Propositions {
				fmt.Printf("   p%d  %s\n", j+1, p.Text)
			}
		}
		return nil
	},
}

var bookCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new book at the top of the list",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title string
		if len(args) == 1 {
			title = args[0]
		}
		result, err := commands.NewCreateBookCommand(GetDoc(), title).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var bookRenameCmd = &cobra.Command{
	Use:   "rename <book> <title>",
	Short: "Set a book's title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRenameBookCommand(GetDoc(), args[0], args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var bookDescribeEdit bool

var bookDescribeCmd = &cobra.Command{
	Use:   "describe <book> [text]",
	Short: "Set a book's description",
	Long: `Set a book's free-text description.

With --edit the current description opens in $EDITOR (or the editor
set in the config file) and the saved text replaces it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		doc := GetDoc()

		var text string
		switch {
		case bookDescribeEdit:
			book, err := commands.NewGetBookCommand(doc, args[0]).Execute(ctx)
			if err != nil {
				return err
			}
			text, err = editor.Edit(editor.NewOpener(env.Config.Editor), book.Description)
			if err != nil {
				return err
			}
		case len(args) == 2:
			text = args[1]
		default:
			return fmt.Errorf("give the description text or use --edit")
		}

		result, err := commands.NewDescribeBookCommand(doc, args[0], text).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var bookTypeCmd = &cobra.Command{
	Use:       "type <book> <teorico|pratico>",
	Short:     "Classify a book as theoretical or practical",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(domain.BookTypeTheoretical), string(domain.BookTypePractical)},
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewSetBookTypeCommand(GetDoc(), args[0], domain.BookType(args[1])).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var bookDeleteYes bool

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <book>",
	Short: "Delete a book and everything in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		doc := GetDoc()

		book, err := commands.NewGetBookCommand(doc, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		ok, err := confirmDelete(fmt.Sprintf("book %q", book.Title), bookDeleteYes)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Cancelled")
			return nil
		}

		result, err := commands.NewDeleteBookCommand(doc, book.ID).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookCmd)
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookShowCmd)
	bookCmd.AddCommand(bookCreateCmd)
	bookCmd.AddCommand(bookRenameCmd)
	bookCmd.AddCommand(bookDescribeCmd)
	bookCmd.AddCommand(bookTypeCmd)
	bookCmd.AddCommand(bookDeleteCmd)

	bookDescribeCmd.Flags().BoolVarP(&bookDescribeEdit, "edit", "e", false, "edit the description in $EDITOR")
	bookDeleteCmd.Flags().BoolVarP(&bookDeleteYes, "yes", "y", false, "delete without asking")
}
