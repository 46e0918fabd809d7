package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/processing"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Batch-process images into thumbnails and conversions",
	}

	processCmd.AddCommand(newProcessPresetCommand(ctx, "tiny",
		"Create tiny JPEG thumbnails", func(width int) processing.Options {
			return processing.Options{Suffix: "-tiny", TargetWidth: width, ConvertToJPEG: true}
		}, func(cfg processingWidths) int { return cfg.tiny }))
	processCmd.AddCommand(newProcessPresetCommand(ctx, "small",
		"Create small JPEG thumbnails", func(width int) processing.Options {
			return processing.Options{Suffix: "-small", TargetWidth: width, ConvertToJPEG: true}
		}, func(cfg processingWidths) int { return cfg.small }))
	processCmd.AddCommand(newProcessConvertCommand(ctx, "tif",
		"Convert TIFF images to JPEG", []string{".tif", ".tiff"}))
	processCmd.AddCommand(newProcessConvertCommand(ctx, "heic",
		"Convert HEIC images to JPEG", []string{".heic", ".heif"}))
	processCmd.AddCommand(newProcessRunCommand(ctx))
	processCmd.AddCommand(newTempRenameCommand(ctx))

	return processCmd
}

type processingWidths struct {
	tiny  int
	small int
}

func newProcessPresetCommand(ctx *commandContext, name, short string, buildOpts func(int) processing.Options, pickWidth func(processingWidths) int) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [input-dir]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			inputDir := cfg.Paths.ImagesDir
			if len(args) == 1 {
				inputDir = args[0]
			}
			widths := processingWidths{tiny: cfg.Processing.TinyWidth, small: cfg.Processing.SmallWidth}

			proc := processing.New(cfg.Processing.OutputDir, logger)
			report, err := proc.Run(cmd.Context(), inputDir, buildOpts(pickWidth(widths)))
			if err != nil {
				return err
			}
			printProcessingReport(cmd, report, proc.OutputDir())
			return nil
		},
	}
}

func newProcessConvertCommand(ctx *commandContext, name, short string, extensions []string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [input-dir]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			inputDir := cfg.Paths.ImagesDir
			if len(args) == 1 {
				inputDir = args[0]
			}

			proc := processing.New(cfg.Processing.OutputDir, logger)
			report, err := proc.Run(cmd.Context(), inputDir, processing.Options{
				ConvertToJPEG: true,
				Extensions:    extensions,
			})
			if err != nil {
				return err
			}
			printProcessingReport(cmd, report, proc.OutputDir())
			return nil
		},
	}
}

func newProcessRunCommand(ctx *commandContext) *cobra.Command {
	var suffix string
	var width int
	var toJPEG bool
	var extensions []string

	cmd := &cobra.Command{
		Use:   "run [input-dir]",
		Short: "Run a custom processing pass",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			inputDir := cfg.Paths.ImagesDir
			if len(args) == 1 {
				inputDir = args[0]
			}

			proc := processing.New(cfg.Processing.OutputDir, logger)
			report, err := proc.Run(cmd.Context(), inputDir, processing.Options{
				Suffix:        suffix,
				TargetWidth:   width,
				ConvertToJPEG: toJPEG,
				Extensions:    extensions,
			})
			if err != nil {
				return err
			}
			printProcessingReport(cmd, report, proc.OutputDir())
			return nil
		},
	}

	cmd.Flags().StringVar(&suffix, "suffix", "", "Suffix appended to output base names")
	cmd.Flags().IntVar(&width, "width", 0, "Downscale images wider than this (0 keeps original size)")
	cmd.Flags().BoolVar(&toJPEG, "jpeg", false, "Convert outputs to JPEG")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "Restrict inputs to these extensions (e.g. .tif,.tiff)")
	return cmd
}

func newTempRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "temp-rename [input-dir]",
		Short: "Rename TEMP_123.ext files to TEMP.123.ext in place",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			inputDir := cfg.Paths.ImagesDir
			if len(args) == 1 {
				inputDir = args[0]
			}

			report, err := processing.RenameTempFiles(inputDir, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Renamed %d files, skipped %d\n", report.Renamed, report.Skipped)
			for _, failure := range report.Failures {
				fmt.Fprintf(out, "  failed: %s: %v\n", failure.Path, failure.Err)
			}
			return nil
		},
	}
}

func printProcessingReport(cmd *cobra.Command, report processing.Report, outputDir string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d images into %s\n", report.Processed, outputDir)
	if report.Failed > 0 {
		names := make([]string, 0, len(report.Failures))
		for _, failure := range report.Failures {
			names = append(names, fmt.Sprintf("  %s: %v", failure.Path, failure.Err))
		}
		fmt.Fprintf(out, "%d files failed:\n%s\n", report.Failed, strings.Join(names, "\n"))
	}
}
