package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/session"
)

func newNextCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance to the next image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session.Session) error {
				view, err := sess.Engine.Next()
				if err != nil {
					return err
				}
				printView(cmd.OutOrStdout(), view)
				reportSaveErr(cmd.OutOrStdout(), view.SaveErr)
				return nil
			})
		},
	}
}

func newPrevCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Step back to the previous image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session.Session) error {
				view, err := sess.Engine.Prev()
				if err != nil {
					return err
				}
				printView(cmd.OutOrStdout(), view)
				reportSaveErr(cmd.OutOrStdout(), view.SaveErr)
				return nil
			})
		},
	}
}

func newGotoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <position>",
		Short: "Jump to an image by its 1-based position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("position must be a number: %q", args[0])
			}
			return ctx.withSession(func(sess *session.Session) error {
				view, err := sess.Engine.JumpTo(position - 1)
				if err != nil {
					return err
				}
				printView(cmd.OutOrStdout(), view)
				reportSaveErr(cmd.OutOrStdout(), view.SaveErr)
				return nil
			})
		},
	}
}
