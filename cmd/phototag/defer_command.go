package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/session"
)

func newDeferCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "defer",
		Aliases: []string{"dontknow"},
		Short:   "Mark the current image as unidentified and move it to the end",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session.Session) error {
				result, err := sess.Engine.MarkUnknown()
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if result.AlreadyMarked {
					fmt.Fprintf(out, "%s is already marked as unidentified\n", result.File)
				} else {
					fmt.Fprintf(out, "Deferred %s to the end of the queue\n", result.File)
				}
				reportSaveErr(out, result.SaveErr)

				if view, err := sess.Engine.Current(); err == nil {
					printView(out, view)
				}
				return nil
			})
		},
	}
}
