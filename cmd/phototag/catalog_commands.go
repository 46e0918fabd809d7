package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/catalog"
	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/session"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and import the description catalog",
	}

	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogPasteCommand(ctx))

	return catalogCmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg.Paths.CatalogDB)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty; run `phototag catalog import` first")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Description, entry.ObjectNumber, entry.Location})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Description", "Object Number", "Location"},
				rows,
			))
			return nil
		},
	}
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <description>",
		Short: "Show one catalog entry in full",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg.Paths.CatalogDB)
			if err != nil {
				return err
			}
			defer store.Close()

			key := strings.Join(args, " ")
			entry, err := store.Lookup(cmd.Context(), key)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("no catalog entry matches %q", key)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Description:          %s\n", entry.Description)
			fmt.Fprintf(out, "Object number:        %s\n", entry.ObjectNumber)
			fmt.Fprintf(out, "Sticker number:       %s\n", entry.StickerNumber)
			fmt.Fprintf(out, "Imported description: %s\n", entry.ImportedDescription)
			fmt.Fprintf(out, "Location:             %s\n", entry.Location)
			return nil
		},
	}
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Replace the catalog from a CSV export and restart tagging",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer file.Close()

			entries, skipped, err := catalog.ReadCSV(file)
			if err != nil {
				return err
			}
			return replaceCatalog(cmd, ctx, entries, skipped)
		},
	}
}

func newCatalogPasteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "paste",
		Short: "Replace the catalog from spreadsheet rows on stdin and restart tagging",
		RunE: func(cmd *cobra.Command, args []string) error {
			if stdinIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), "Paste spreadsheet rows, then press Ctrl-D:")
			}
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read pasted rows: %w", err)
			}

			entries, skipped := catalog.ParsePasted(string(raw))
			return replaceCatalog(cmd, ctx, entries, skipped)
		},
	}
}

// replaceCatalog swaps the catalog contents and resets the tagging history.
// Importing invalidates every recorded rename and used description.
func replaceCatalog(cmd *cobra.Command, ctx *commandContext, entries []catalog.Entry, skipped int) error {
	if len(entries) == 0 {
		return errors.New("no usable rows found; catalog left unchanged")
	}

	return ctx.withSession(func(sess *session.Session) error {
		count, err := sess.Catalog.Replace(cmd.Context(), entries)
		if err != nil {
			return err
		}
		if err := sess.Engine.ResetForNewCatalog(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d catalog entries", count)
		if skipped > 0 {
			fmt.Fprintf(out, " (%d rows skipped)", skipped)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Tagging history cleared; the image queue was rescanned")
		return nil
	})
}
