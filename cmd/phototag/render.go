package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Staithes-Museum/CataloguePhotoRenamer/internal/tagging"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorizeStatus(status tagging.FileStatus, colorize bool) string {
	if !colorize {
		return string(status)
	}
	switch status {
	case tagging.StatusRenamed:
		return ansiGreen + string(status) + ansiReset
	case tagging.StatusUnknown:
		return ansiYellow + string(status) + ansiReset
	case tagging.StatusRenamedAway:
		return ansiBlue + string(status) + ansiReset
	default:
		return string(status)
	}
}

func printView(out io.Writer, view tagging.View) {
	colorize := shouldColorize(out)
	fmt.Fprintf(out, "Image %d of %d: %s\n", view.Index+1, view.Total, view.Name)
	fmt.Fprintf(out, "  Status: %s\n", colorizeStatus(view.Status, colorize))
	if view.Status == tagging.StatusRenamed && view.Original != "" {
		fmt.Fprintf(out, "  Was:    %s\n", view.Original)
	}
	fmt.Fprintf(out, "  Path:   %s\n", view.Path)
}

func reportSaveErr(out io.Writer, err error) {
	if err != nil {
		fmt.Fprintf(out, "Warning: progress could not be saved: %v\n", err)
	}
}
