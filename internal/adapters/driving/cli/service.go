package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/format"
	"github.com/custodia-labs/pew/internal/core/ports/driving"
	"github.com/custodia-labs/pew/internal/documents/docx"
)

// serviceFlags holds the details of a service given on the command line.
var serviceFlags struct {
	title       string
	date        string
	celebrant   string
	preacher    string
	secondary   string
	introit     string
	offertory   string
	recessional string
	anthem      string
	composer    string
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Prepare service sheets",
}

var serviceShowCmd = &cobra.Command{
	Use:   "show FEAST",
	Short: "Show a service sheet",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runServiceShow,
}

var serviceExportCmd = &cobra.Command{
	Use:   "export FEAST",
	Short: "Export a service sheet as DOCX or PDF",
	Long: `Generate a service sheet for a feast. Hymns are given by New English
Hymnal number ("30") or reference ("NEH: 30").

Examples:
  pew service export "Christmas Day" --date 2021-12-25 \
      --celebrant "Fr Smith" --preacher "Fr Jones" \
      --introit 30 --offertory 24 --recessional 26 -o .`,
	Args: cobra.MinimumNArgs(1),
	RunE: runServiceExport,
}

func init() {
	for _, cmd := range []*cobra.Command{serviceShowCmd, serviceExportCmd} {
		f := cmd.Flags()
		f.StringVar(&serviceFlags.title, "title", "", "service title (default the feast name)")
		f.StringVar(&serviceFlags.date, "date", "", "service date as YYYY-MM-DD")
		f.StringVar(&serviceFlags.celebrant, "celebrant", "", "celebrant")
		f.StringVar(&serviceFlags.preacher, "preacher", "", "preacher")
		f.StringVar(&serviceFlags.secondary, "secondary", "", "feast commemorated alongside the primary one")
		f.StringVar(&serviceFlags.introit, "introit", "", "introit hymn")
		f.StringVar(&serviceFlags.offertory, "offertory", "", "offertory hymn")
		f.StringVar(&serviceFlags.recessional, "recessional", "", "recessional hymn")
		f.StringVar(&serviceFlags.anthem, "anthem", "", "anthem title")
		f.StringVar(&serviceFlags.composer, "composer", "", "anthem composer")
	}
	addExportFlags(serviceExportCmd)

	serviceCmd.AddCommand(serviceShowCmd)
	serviceCmd.AddCommand(serviceExportCmd)
	rootCmd.AddCommand(serviceCmd)
}

func runServiceShow(cmd *cobra.Command, args []string) error {
	req, err := serviceRequest(args)
	if err != nil {
		return err
	}
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	svc, err := serviceBuilder.Build(cmd.Context(), req)
	if err != nil {
		return err
	}

	printDocument(cmd, docx.ServiceDocument(svc))
	cmd.Println()
	cmd.Printf("Summary: %s\n", format.ServiceSummary(svc))
	return nil
}

func runServiceExport(cmd *cobra.Command, args []string) error {
	outFormat, err := domain.ParseFormat(exportFormat)
	if err != nil {
		return fmt.Errorf("%w: %q (use docx or pdf)", err, exportFormat)
	}
	req, err := serviceRequest(args)
	if err != nil {
		return err
	}
	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	artifact, err := exportService.ExportService(cmd.Context(), req, outFormat)
	if err != nil {
		return explainExport(err)
	}
	defer artifact.Close()

	return deliver(cmd, artifact, exportOutput)
}

func serviceRequest(args []string) (driving.ServiceRequest, error) {
	req := driving.ServiceRequest{
		Title:           strings.TrimSpace(serviceFlags.title),
		Celebrant:       strings.TrimSpace(serviceFlags.celebrant),
		Preacher:        strings.TrimSpace(serviceFlags.preacher),
		PrimaryFeast:    strings.Join(args, " "),
		SecondaryFeast:  strings.TrimSpace(serviceFlags.secondary),
		IntroitHymn:     domain.ParseHymnRef(serviceFlags.introit),
		OffertoryHymn:   domain.ParseHymnRef(serviceFlags.offertory),
		RecessionalHymn: domain.ParseHymnRef(serviceFlags.recessional),
		Anthem:          strings.TrimSpace(serviceFlags.anthem),
		AnthemComposer:  strings.TrimSpace(serviceFlags.composer),
	}
	if serviceFlags.date != "" {
		date, err := time.Parse(time.DateOnly, serviceFlags.date)
		if err != nil {
			return driving.ServiceRequest{}, fmt.Errorf("--date %q must be YYYY-MM-DD: %w", serviceFlags.date, domain.ErrInvalidInput)
		}
		req.Date = date
	}
	return req, nil
}
