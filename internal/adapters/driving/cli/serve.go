package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pew/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pew/internal/adapters/driving/web"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
	"github.com/custodia-labs/pew/internal/documents/pdf"
	"github.com/custodia-labs/pew/internal/logger"
)

var (
	serveAddr      string
	serveTemplates string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Start the web interface for browsing feasts, preparing service sheets and
downloading them as DOCX or PDF.

PDF downloads need LibreOffice (soffice) on the PATH. When conversion fails
the page explains why and the DOCX download remains available.

Pages can be restyled by pointing --templates at a directory; missing
templates are written there from the built-in defaults. Edits are picked
up while the server runs.

Examples:
  pew serve
  pew serve --addr 0.0.0.0:8080
  pew serve --templates ~/.pew/templates`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().StringVar(&serveTemplates, "templates", "", "directory of page templates (default built-in)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ensureServices(ctx); err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}
		addr = settings.Server.Addr
	}

	if converterCheck != nil {
		if err := converterCheck(); err != nil {
			logger.Warn("PDF downloads will fail: %v", err)
			if errors.Is(err, pdf.ErrConverterNotFound) {
				cmd.PrintErrln("Warning: PDF downloads are unavailable.")
				cmd.PrintErrln(pdf.InstallInstructions())
			}
		}
	}

	templates, err := pageTemplates()
	if err != nil {
		return err
	}

	server, err := web.NewServer(&web.Ports{
		Records: recordService,
		Builder: serviceBuilder,
		Export:  exportService,
	}, templates)
	if err != nil {
		return err
	}

	if serveTemplates != "" {
		watcher, err := watchTemplates(ctx, serveTemplates, server)
		if err != nil {
			logger.Warn("template changes will need a restart: %v", err)
		} else {
			defer watcher.Stop()
		}
	}

	cmd.Printf("pew is serving on http://%s (Ctrl+C to stop)\n", addr)
	return server.Run(ctx, addr)
}

// pageTemplates returns nil for the built-in templates.
func pageTemplates() (driven.TemplateStore, error) {
	if serveTemplates == "" {
		return nil, nil
	}
	return file.NewTemplateStore(serveTemplates, web.DefaultTemplates())
}

// reloader is the part of the web server the template watcher drives.
type reloader interface {
	ReloadTemplates() error
}

// watchTemplates reloads the server's pages whenever a template in dir changes.
func watchTemplates(ctx context.Context, dir string, server reloader) (*file.TemplateWatcher, error) {
	watcher, err := file.NewTemplateWatcher(dir, func() {
		if err := server.ReloadTemplates(); err != nil {
			logger.Error("reloading templates: %v", err)
			return
		}
		logger.Info("templates reloaded from %s", dir)
	})
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(ctx); err != nil {
		return nil, err
	}
	return watcher, nil
}
