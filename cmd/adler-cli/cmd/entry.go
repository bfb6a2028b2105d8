package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"adler/internal/application/commands"
	"adler/internal/domain"
)

// newEntryCmd builds the command group for terms or propositions
func newEntryCmd(kind commands.EntryKind) *cobra.Command {
	use, noun := "prop", "proposition"
	if kind == commands.EntryTerm {
		use, noun = "term", "term"
	}

	group := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Manage a chapter's %ss", noun),
		Long: fmt.Sprintf(`Add, edit, reorder and delete %ss. Chapter and %s positions
start at 1.

Examples:
  adler-cli %[3]s add 3f9c2a1b 1 %[4]s
  adler-cli %[3]s move 3f9c2a1b 1 2 1
  adler-cli %[3]s delete 3f9c2a1b 1 2`, noun, noun, use, exampleText(kind)),
	}

	add := &cobra.Command{
		Use:   "add <book> <chapter> [text]" + definitionArg(kind),
		Short: fmt.Sprintf("Append a %s to a chapter", noun),
		Args:  cobra.RangeArgs(2, maxAddArgs(kind)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ci, err := parsePosition(args[1], "chapter")
			if err != nil {
				return err
			}
			var text, definition string
			if len(args) > 2 {
				text = args[2]
			}
			if len(args) > 3 {
				definition = args[3]
			}
			result, err := commands.NewAddEntryCommand(GetDoc(), kind, args[0], ci, text, definition).Execute(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <book> <chapter> <position> <value>",
		Short: fmt.Sprintf("Edit a %s", noun),
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ci, ei, err := parseEntryPosition(args[1], args[2], noun)
			if err != nil {
				return err
			}
			field, _ := cmd.Flags().GetString("field")
			result, err := commands.NewSetEntryCommand(GetDoc(), kind, args[0], ci, ei, domain.DefinitionField(field), args[3]).Execute(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
	if kind == commands.EntryTerm {
		set.Flags().StringP("field", "f", string(domain.FieldTermo), "field to set: termo or definicao")
	}

	move := &cobra.Command{
		Use:   "move <book> <chapter> <from> <to>",
		Short: fmt.Sprintf("Move a %s within its chapter", noun),
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ci, from, err := parseEntryPosition(args[1], args[2], noun)
			if err != nil {
				return err
			}
			to, err := parsePosition(args[3], "target")
			if err != nil {
				return err
			}
			result, err := commands.NewMoveEntryCommand(GetDoc(), kind, args[0], ci, from, to).Execute(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <book> <chapter> <position>",
		Short: fmt.Sprintf("Delete a %s", noun),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ci, ei, err := parseEntryPosition(args[1], args[2], noun)
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			ok, err := confirmDelete(fmt.Sprintf("%s %d of chapter %d", noun, ei+1, ci+1), yes)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled")
				return nil
			}
			result, err := commands.NewDeleteEntryCommand(GetDoc(), kind, args[0], ci, ei).Execute(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
	del.Flags().BoolP("yes", "y", false, "delete without asking")

	group.AddCommand(add, set, move, del)
	return group
}

func parseEntryPosition(chapter, entry, noun string) (int, int, error) {
	ci, err := parsePosition(chapter, "chapter")
	if err != nil {
		return 0, 0, err
	}
	ei, err := parsePosition(entry, noun)
	if err != nil {
		return 0, 0, err
	}
	return ci, ei, nil
}

func definitionArg(kind commands.EntryKind) string {
	if kind == commands.EntryTerm {
		return " [definicao]"
	}
	return ""
}

func maxAddArgs(kind commands.EntryKind) int {
	if kind == commands.EntryTerm {
		return 4
	}
	return 3
}

func exampleText(kind commands.EntryKind) string {
	if kind == commands.EntryTerm {
		return `"Areté" "excelência"`
	}
	return `"A virtude pode ser ensinada"`
}

func init() {
	rootCmd.AddCommand(newEntryCmd(commands.EntryTerm))
	rootCmd.AddCommand(newEntryCmd(commands.EntryProposition))
}
