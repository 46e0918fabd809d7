package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to point images_dir at your photo folder.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the effective configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults shown")
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Setting", "Value"},
				[][]string{
					{"images_dir", cfg.Paths.ImagesDir},
					{"catalog_db", cfg.Paths.CatalogDB},
					{"progress_file", cfg.Paths.ProgressFile},
					{"lock_file", cfg.Paths.LockFile},
					{"log_dir", cfg.Paths.LogDir},
					{"log_format", cfg.Logging.Format},
					{"log_level", cfg.Logging.Level},
					{"output_dir", cfg.Processing.OutputDir},
					{"tiny_width", fmt.Sprintf("%d", cfg.Processing.TinyWidth)},
					{"small_width", fmt.Sprintf("%d", cfg.Processing.SmallWidth)},
				},
			))
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the configuration file path",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, _, err := config.Load("")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
