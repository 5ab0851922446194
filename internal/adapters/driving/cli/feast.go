package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/documents/docx"
)

var feastJSON bool

var feastCmd = &cobra.Command{
	Use:   "feast",
	Short: "Look up feasts and export their propers",
}

var feastListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all feasts",
	Args:  cobra.NoArgs,
	RunE:  runFeastList,
}

var feastShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show the propers of a feast",
	Long: `Show the propers of a feast. The name must match exactly; words may be
given as separate arguments.

Examples:
  pew feast show "Christmas Day"
  pew feast show Christmas Day --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFeastShow,
}

var feastExportCmd = &cobra.Command{
	Use:   "export NAME",
	Short: "Export a feast as DOCX or PDF",
	Long: `Generate the propers document for a feast.

Examples:
  pew feast export "Christmas Day" -o .
  pew feast export "Christmas Day" --format pdf -o christmas.pdf
  pew feast export "Christmas Day" -o - > christmas.docx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFeastExport,
}

func init() {
	feastListCmd.Flags().BoolVar(&feastJSON, "json", false, "output as JSON")
	feastShowCmd.Flags().BoolVar(&feastJSON, "json", false, "output as JSON")
	addExportFlags(feastExportCmd)

	feastCmd.AddCommand(feastListCmd)
	feastCmd.AddCommand(feastShowCmd)
	feastCmd.AddCommand(feastExportCmd)
	rootCmd.AddCommand(feastCmd)
}

func runFeastList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	feasts, err := recordService.Feasts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list feasts: %w", err)
	}

	if feastJSON {
		names := make([]string, len(feasts))
		for i := range feasts {
			names[i] = feasts[i].Name
		}
		return printJSON(cmd, names)
	}

	if len(feasts) == 0 {
		cmd.Println("No feasts found.")
		return nil
	}
	for i := range feasts {
		cmd.Println(feasts[i].Name)
	}
	return nil
}

func runFeastShow(cmd *cobra.Command, args []string) error {
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	name := strings.Join(args, " ")
	feast, err := recordService.Feast(cmd.Context(), name)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("feast %q not found: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if feastJSON {
		return printJSON(cmd, feastRecord(feast))
	}
	printDocument(cmd, docx.FeastDocument(feast))
	return nil
}

func runFeastExport(cmd *cobra.Command, args []string) error {
	format, err := domain.ParseFormat(exportFormat)
	if err != nil {
		return fmt.Errorf("%w: %q (use docx or pdf)", err, exportFormat)
	}
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	artifact, err := exportService.ExportFeast(cmd.Context(), strings.Join(args, " "), format)
	if err != nil {
		return explainExport(err)
	}
	defer artifact.Close()

	return deliver(cmd, artifact, exportOutput)
}

// feastRecord keys each proper by its column name.
func feastRecord(f *domain.Feast) map[string]string {
	out := make(map[string]string, len(domain.FeastColumns))
	for _, col := range domain.FeastColumns {
		if v, _ := f.Attr(col); v != "" {
			out[col] = v
		}
	}
	return out
}

// printDocument prints headings underlined and body paragraphs indented.
func printDocument(cmd *cobra.Command, doc *domain.Document) {
	for _, p := range doc.Paragraphs {
		switch p.Style {
		case docx.StyleTitle:
			cmd.Println(p.Text)
			cmd.Println(strings.Repeat("=", len([]rune(p.Text))))
		case docx.StyleHeading1:
			cmd.Println()
			cmd.Println(p.Text)
			cmd.Println(strings.Repeat("-", len([]rune(p.Text))))
		default:
			if p.Text != "" {
				cmd.Println(p.Text)
			}
		}
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
