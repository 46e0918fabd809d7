package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "phototag",
		Short:         "Museum photo cataloguing and renaming tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newNextCommand(ctx))
	rootCmd.AddCommand(newPrevCommand(ctx))
	rootCmd.AddCommand(newGotoCommand(ctx))
	rootCmd.AddCommand(newTagCommand(ctx))
	rootCmd.AddCommand(newUndoCommand(ctx))
	rootCmd.AddCommand(newDeferCommand(ctx))
	rootCmd.AddCommand(newCatalogCommand(ctx))
	rootCmd.AddCommand(newProcessCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
