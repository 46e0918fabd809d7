package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/session"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize tagging progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSession(func(sess *session.Session) error {
				snap := sess.Engine.Snapshot()
				entries, err := sess.Catalog.Count(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Metric", "Value"},
					[][]string{
						{"Images in queue", fmt.Sprintf("%d", snap.QueueLen)},
						{"Current position", fmt.Sprintf("%d", snap.Index+1)},
						{"Catalog entries", fmt.Sprintf("%d", entries)},
						{"Descriptions used", fmt.Sprintf("%d", len(snap.UsedTags))},
						{"Files renamed", fmt.Sprintf("%d", len(snap.Renamed))},
						{"Unidentified", fmt.Sprintf("%d", len(snap.DontKnowFiles))},
					},
					2,
				))

				if !verbose {
					return nil
				}

				collator := collate.New(language.BritishEnglish, collate.IgnoreCase)

				if len(snap.UsedTags) > 0 {
					tags := append([]string(nil), snap.UsedTags...)
					collator.SortStrings(tags)
					fmt.Fprintln(out, "\nDescriptions used:")
					for _, tag := range tags {
						fmt.Fprintf(out, "  %s\n", tag)
					}
				}

				if len(snap.Renamed) > 0 {
					originals := make([]string, 0, len(snap.Renamed))
					for from := range snap.Renamed {
						originals = append(originals, from)
					}
					collator.SortStrings(originals)
					rows := make([][]string, 0, len(originals))
					for _, from := range originals {
						rows = append(rows, []string{from, snap.Renamed[from]})
					}
					fmt.Fprintln(out)
					fmt.Fprintln(out, renderTable(
						[]string{"Original", "Current"},
						rows,
					))
				}

				if len(snap.DontKnowFiles) > 0 {
					files := append([]string(nil), snap.DontKnowFiles...)
					sort.Strings(files)
					fmt.Fprintln(out, "\nUnidentified files:")
					for _, name := range files {
						fmt.Fprintf(out, "  %s\n", name)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List used descriptions, renames, and unidentified files")
	return cmd
}
