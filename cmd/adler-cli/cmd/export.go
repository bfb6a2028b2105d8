package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"adler/internal/adapters/pdf"
	"adler/internal/application/commands"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export [book]",
	Short: "Export a book as a PDF",
	Long: `Export a book, or the first book, as a paginated PDF named after its
title. The file goes to --dir, or to export_dir from the config file.

Examples:
  adler-cli export
  adler-cli export 3f9c2a1b --dir ~/Desktop`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		dir := exportDir
		if dir == "" {
			dir = env.Config.ExportDir
		}

		result, err := commands.NewExportCommand(GetDoc(), pdf.NewExporter(env.Log), ref, dir).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory")
}
