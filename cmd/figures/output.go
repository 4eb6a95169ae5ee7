package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/kapu/figures-review-go/internal/app"
	apperrors "github.com/kapu/figures-review-go/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// flag renders a yes/no cell, green when set on a terminal.
func flag(v bool, colorize bool) string {
	if !v {
		return "no"
	}
	if colorize {
		return text.Colors{text.FgGreen}.Sprint("yes")
	}
	return "yes"
}

// loadFailure turns a failed load into the user-facing message, naming the
// backend when it could not be reached at all.
func loadFailure(c *app.Container, message string, err error) error {
	if apperrors.IsTransport(err) {
		return fmt.Errorf("%s Is the backend running at %s?", message, c.Client.BaseURL())
	}
	return errors.New(message)
}
