package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/session"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/tagging"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore the current image's name from before its last rename",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session.Session) error {
				approver := overwriteApprover(cmd, overwrite)
				result, err := sess.Engine.UndoRename(approver)
				if err != nil {
					switch {
					case errors.Is(err, tagging.ErrNotRenamed):
						return errors.New("the current file has not been renamed")
					case errors.Is(err, tagging.ErrOverwriteDeclined):
						return errors.New("undo cancelled; the original name is taken (use --overwrite to replace it)")
					default:
						return err
					}
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Restored %s (was %s)\n", result.Restored, result.From)
				reportSaveErr(out, result.SaveErr)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file occupying the original name")
	return cmd
}

// overwriteApprover grants --overwrite unconditionally, asks on a tty, and
// declines otherwise.
func overwriteApprover(cmd *cobra.Command, overwrite bool) tagging.OverwriteApprover {
	if overwrite {
		return tagging.OverwriteApproverFunc(func(string) bool { return true })
	}
	if !stdinIsTerminal() {
		return nil
	}
	return tagging.OverwriteApproverFunc(func(target string) bool {
		fmt.Fprintf(cmd.OutOrStdout(), "A file named %s already exists. Overwrite it? [y/N] ", target)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}
