package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
)

var (
	exportFormat string
	exportOutput string
)

// addExportFlags registers the flags shared by the export commands.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "docx", "output format: docx or pdf")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "",
		"file or directory to write to; - for stdout (default stdout, refused on a terminal)")
}

// deliver copies the artifact to the requested destination.
func deliver(cmd *cobra.Command, artifact *driving.Artifact, output string) error {
	if output == "" || output == "-" {
		w := cmd.OutOrStdout()
		if output == "" && isTerminal(w) {
			return fmt.Errorf("refusing to write %s to a terminal: use --output FILE, --output DIR or --output -",
				artifact.Format)
		}
		return copyFile(w, artifact.Path)
	}

	dest := output
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, artifact.Filename)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if err := copyFile(f, artifact.Path); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}

	cmd.PrintErrf("Wrote %s\n", dest)
	return nil
}

func copyFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copying %s: %w", filepath.Base(path), err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// explainExport adds a hint to conversion failures.
func explainExport(err error) error {
	if errors.Is(err, domain.ErrConversionFailed) {
		return fmt.Errorf("%w\nthe DOCX version is still available: rerun with --format docx", err)
	}
	return err
}
