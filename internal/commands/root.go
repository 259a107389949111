package commands

import (
	"github.com/spf13/cobra"

	"github.com/Gui-ZeN/AgiliDash-sub000/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "agilidash",
		Short:   "Import and consolidate Domínio accounting reports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(),
		newInboxCommand(),
		newShowCommand(),
		newClearCommand(),
		newFamiliesCommand(),
		newHistoryCommand(),
	)

	return rootCmd
}
