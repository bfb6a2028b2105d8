package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"adler/internal/adapters/mindmap"
	"adler/internal/adapters/storage"
	"adler/internal/adapters/watcher"
	"adler/internal/application/commands"
)

var (
	outlineExport bool
	outlinePretty bool
	outlineCopy   bool
	outlineWatch  bool
	outlineWidth  int
)

var outlineCmd = &cobra.Command{
	Use:   "outline [book]",
	Short: "Print a book as a markdown outline",
	Long: `Print the markdown outline of a book, or of the first book when none
is given.

--export prints the export projection: chapters numbered with Roman
numerals and no book title. --watch keeps printing the outline each time
the store changes, until interrupted.

Examples:
  adler-cli outline
  adler-cli outline 3f9c2a1b --export --copy
  adler-cli outline --pretty --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		if err := printOutline(cmd.Context(), ref); err != nil {
			return err
		}
		if !outlineWatch {
			return nil
		}
		return watchOutline(ref)
	},
}

func printOutline(ctx context.Context, ref string) error {
	outline, err := commands.NewOutlineCommand(GetDoc(), ref, outlineExport).Execute(ctx)
	if err != nil {
		return err
	}

	if outlineCopy {
		if err := clipboard.WriteAll(outline); err != nil {
			return fmt.Errorf("failed to copy outline: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Outline copied to clipboard")
	}

	if outlinePretty {
		fmt.Print(mindmap.Pretty(outline, outlineWidth, env.Log))
		return nil
	}
	fmt.Print(outline)
	return nil
}

func watchOutline(ref string) error {
	path := storage.WatchPath(env.Config)
	if path == "" {
		return fmt.Errorf("--watch needs the file backend, not %s", env.Config.Backend)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, err := watcher.New(path, env.Log, func() {
		GetDoc().Reload(ctx)
		fmt.Println()
		if err := printOutline(ctx, ref); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Start(ctx)
}

func init() {
	rootCmd.AddCommand(outlineCmd)
	outlineCmd.Flags().BoolVarP(&outlineExport, "export", "x", false, "print the export projection")
	outlineCmd.Flags().BoolVarP(&outlinePretty, "pretty", "p", false, "render the markdown for the terminal")
	outlineCmd.Flags().BoolVar(&outlineCopy, "copy", false, "also copy the outline to the clipboard")
	outlineCmd.Flags().BoolVarP(&outlineWatch, "watch", "w", false, "reprint whenever the store changes")
	outlineCmd.Flags().IntVar(&outlineWidth, "width", 80, "wrap width for --pretty")
}
