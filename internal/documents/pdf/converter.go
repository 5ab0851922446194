package pdf

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pew/internal/core/domain"
	"github.com/custodia-labs/pew/internal/core/ports/driven"
	"github.com/custodia-labs/pew/internal/logger"
)

// Ensure Converter implements the interface.
var _ driven.DocumentConverter = (*Converter)(nil)

// DefaultCommand is the office suite binary used when none is configured.
const DefaultCommand = "soffice"

var (
	// ErrConverterNotFound indicates the office suite binary is not installed.
	ErrConverterNotFound = errors.New("soffice not found: install LibreOffice to enable PDF downloads")

	// ErrNoOutput indicates the office suite exited without writing a PDF.
	ErrNoOutput = errors.New("converter produced no output file")

	// ErrEmptyOutput indicates the office suite wrote an empty PDF.
	ErrEmptyOutput = errors.New("converter produced an empty file")

	// ErrContentMissing indicates the PDF text lacks the document's heading.
	ErrContentMissing = errors.New("converted file is missing document content")
)

// Config configures a Converter.
type Config struct {
	// Command is the office suite binary, DefaultCommand when empty.
	Command string

	// VerifyCommand is an optional pdftotext binary. When set, the text of
	// every converted file is checked for the source document's heading.
	VerifyCommand string

	RateLimit RateLimitConfig
}

// Converter converts DOCX files to PDF by running an office suite.
type Converter struct {
	command       string
	verifyCommand string
	runner        CommandRunner
	limiter       *RateLimiter
	reader        driven.DocumentReader
}

// New creates a converter that runs real commands.
// reader is used for content verification and may be nil when
// cfg.VerifyCommand is empty.
func New(cfg Config, reader driven.DocumentReader) *Converter {
	return NewWithRunner(cfg, reader, execRunner{})
}

// NewWithRunner creates a converter with a custom command runner.
func NewWithRunner(cfg Config, reader driven.DocumentReader, runner CommandRunner) *Converter {
	command := cfg.Command
	if command == "" {
		command = DefaultCommand
	}
	return &Converter{
		command:       command,
		verifyCommand: cfg.VerifyCommand,
		runner:        runner,
		limiter:       NewRateLimiter(cfg.RateLimit),
		reader:        reader,
	}
}

// Format returns domain.FormatPDF.
func (c *Converter) Format() domain.Format {
	return domain.FormatPDF
}

// Command returns the configured office suite binary.
func (c *Converter) Command() string {
	return c.command
}

// CheckAvailable reports whether the office suite binary can be found.
func (c *Converter) CheckAvailable() error {
	if _, err := exec.LookPath(c.command); err != nil {
		return ErrConverterNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific instructions for the office suite.
func InstallInstructions() string {
	return `PDF downloads require LibreOffice (soffice).

Install with:
  macOS:   brew install --cask libreoffice
  Ubuntu:  apt install libreoffice-writer
  Fedora:  dnf install libreoffice-writer

Optional content verification uses pdftotext:
  macOS:   brew install poppler
  Ubuntu:  apt install poppler-utils`
}

// Convert writes <name>.pdf next to srcPath and returns its path.
func (c *Converter) Convert(ctx context.Context, srcPath string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for converter: %w", err)
	}

	outDir := filepath.Dir(srcPath)
	outPath := strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".pdf"

	args := []string{
		"-env:UserInstallation=" + profileURL(outDir),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outDir,
		srcPath,
	}
	logger.Debug("running %s %s", c.command, strings.Join(args, " "))

	stdout, err := c.runner.Run(ctx, c.command, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrConverterNotFound
		}
		return "", err
	}

	info, err := os.Stat(outPath)
	if errors.Is(err, os.ErrNotExist) {
		// soffice exits 0 and reports problems on stdout
		if msg := strings.TrimSpace(string(stdout)); msg != "" {
			return "", fmt.Errorf("%w: %s", ErrNoOutput, msg)
		}
		return "", ErrNoOutput
	}
	if err != nil {
		return "", fmt.Errorf("checking output: %w", err)
	}
	if info.Size() == 0 {
		return "", ErrEmptyOutput
	}

	if c.verifyCommand != "" {
		if err := c.verify(ctx, srcPath, outPath); err != nil {
			return "", err
		}
	}
	return outPath, nil
}

// verify extracts the PDF's text and checks that the source heading survived.
func (c *Converter) verify(ctx context.Context, srcPath, pdfPath string) error {
	if c.reader == nil {
		return nil
	}

	src, err := c.reader.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading source for verification: %w", err)
	}
	heading := src.Heading()
	if heading == "" {
		return nil
	}

	text, err := c.runner.Run(ctx, c.verifyCommand, "-layout", pdfPath, "-")
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	if !strings.Contains(normaliseSpace(string(text)), normaliseSpace(heading)) {
		return fmt.Errorf("%w: heading %q not found", ErrContentMissing, heading)
	}
	return nil
}

// profileURL returns a file URL for a per-conversion office suite profile
// inside dir. soffice refuses to start while another instance holds the
// default profile.
func profileURL(dir string) string {
	abs, err := filepath.Abs(filepath.Join(dir, ".soffice-profile"))
	if err != nil {
		abs = filepath.Join(dir, ".soffice-profile")
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func normaliseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
