package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cardsnap"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Extractor cardsnap.Extractor
	Sandbox   cardsnap.Sandbox
	Capturer  cardsnap.Capturer
	Bundler   cardsnap.Bundler
	Enricher  cardsnap.Enricher

	// ImageStore returns the store for individual images written to dir.
	ImageStore func(dir string) cardsnap.ImageStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Extract ExtractCmd `cmd:"" help:"List the cards found in HTML files"`
	Capture CaptureCmd `cmd:"" help:"Capture cards as PNG images and bundle them into a zip"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files []string `arg:"" name:"file" help:"HTML files (at most 10)"`
	JSON  bool     `help:"Print cards as JSON"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	Files        []string      `arg:"" name:"file" help:"HTML files (at most 10)"`
	Output       string        `short:"o" default:"cards-bundle.zip" help:"Archive path"`
	Dir          string        `short:"d" help:"Also write individual images to this directory"`
	Settle       time.Duration `default:"2s" env:"CARDSNAP_SETTLE" help:"Wait after rendering a card before capturing"`
	CaptureDelay time.Duration `default:"500ms" env:"CARDSNAP_CAPTURE_DELAY" help:"Extra wait immediately before capturing"`
	Sanitize     bool          `help:"Strip scripts and unsafe attributes from card markup"`
	Browser      string        `env:"CARDSNAP_BROWSER" help:"Chrome or Chromium binary"`
	Enrich       bool          `help:"Generate titles, summaries and tags with Gemini into cards.json"`
	Model        string        `default:"gemini-3-flash-preview" help:"Gemini model for --enrich"`
	Rate         float64       `default:"1.0" help:"Gemini requests per second for --enrich"`
	APIKey       string        `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
}
