package main

import (
	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/session"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the current image and its tagging state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session.Session) error {
				view, err := sess.Engine.Current()
				if err != nil {
					return err
				}
				printView(cmd.OutOrStdout(), view)
				return nil
			})
		},
	}
}
