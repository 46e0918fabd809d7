package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/session"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/tagging"
)

func newTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <description>",
		Short: "Rename the current image after a catalog description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.Join(args, " ")
			return ctx.withSession(func(sess *session.Session) error {
				result, err := sess.Engine.Tag(cmd.Context(), key)
				if err != nil {
					if errors.Is(err, tagging.ErrInvalidDescription) {
						return fmt.Errorf("no catalog entry matches %q", key)
					}
					return err
				}

				out := cmd.OutOrStdout()
				if result.Renamed {
					fmt.Fprintf(out, "Renamed %s -> %s (%s)\n", result.OldName, result.NewName, result.Description)
				} else {
					fmt.Fprintf(out, "%s already carries the name for %q\n", result.NewName, result.Description)
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
