package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"adler/internal/application"
	"adler/internal/bootstrap"
	"adler/internal/config"
)

var (
	configPath string
	env        *bootstrap.Env
)

var rootCmd = &cobra.Command{
	Use:   "adler-cli",
	Short: "CLI for outlining books",
	Long: `adler-cli is a command-line interface for the Adler book outlines.

Books hold ordered chapters; each chapter holds terms (termo and
definicao) and propositions. Every change is saved immediately to the
same store the adler TUI uses.

Books are referenced by ID or by a unique prefix or suffix of it, as
shown by "adler-cli book list". Chapter and entry positions start at 1.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if configPath != "" {
			path := configPath
			config.Path = func() string { return path }
		}

		var err error
		env, err = bootstrap.Open(context.Background(), nil)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env != nil {
			env.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
}

// GetDoc returns the loaded document
func GetDoc() *application.Document {
	return env.Doc
}

// parsePosition converts a 1-based position argument to a 0-based index
func parsePosition(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s position %q: expected a number starting at 1", what, arg)
	}
	return n - 1, nil
}
