package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/cardsnap"
	"github.com/fwojciec/cardsnap/bluemonday"
	"github.com/fwojciec/cardsnap/fs"
	"github.com/fwojciec/cardsnap/gemini"
	"github.com/fwojciec/cardsnap/goquery"
	"github.com/fwojciec/cardsnap/htmltomarkdown"
	"github.com/fwojciec/cardsnap/rod"
	cardslog "github.com/fwojciec/cardsnap/slog"
	"github.com/fwojciec/cardsnap/zip"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Browser used by the capture sandbox. Set by Run.
	Browser *rod.BrowserManager

	// Services for end-to-end testing. When set, Run uses them instead of
	// building the real implementations.
	Extractor cardsnap.Extractor
	Sandbox   cardsnap.Sandbox
	Capturer  cardsnap.Capturer
	Enricher  cardsnap.Enricher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Browser != nil {
		return m.Browser.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Errors are reported on
// stderr before being returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cardsnap"),
		kong.Description("Capture div.card elements from HTML files as PNG images."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cardsnap --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps.Logger = logger

	extractor := m.Extractor
	if extractor == nil {
		extractor = goquery.NewExtractor()
	}
	deps.Extractor = cardslog.NewLoggingExtractor(extractor, logger)

	if strings.HasPrefix(kongCtx.Command(), "capture") {
		defer m.Close()
		if err := m.wireCapture(ctx, deps, &cli.Capture); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", cardsnap.ErrorMessage(err))
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireCapture builds the sandbox, capturer, bundler, image store and
// optional enricher for the capture command.
func (m *Main) wireCapture(ctx context.Context, deps *Dependencies, c *CaptureCmd) error {
	logger := deps.Logger

	sandbox, capturer := m.Sandbox, m.Capturer
	if sandbox == nil || capturer == nil {
		var opts []rod.ManagerOption
		if c.Browser != "" {
			opts = append(opts, rod.WithBrowserBin(c.Browser))
		}
		// Chrome starts when the batch opens the sandbox, after the input
		// has been read and validated.
		manager := rod.NewBrowserManager(opts...)
		m.Browser = manager

		sandboxOpts := []rod.SandboxOption{rod.WithSettle(c.Settle)}
		if c.Sanitize {
			sandboxOpts = append(sandboxOpts, rod.WithSanitizer(bluemonday.NewSanitizer()))
		}
		sandbox = rod.NewSandbox(manager, sandboxOpts...)
		capturer = rod.NewCapturer(rod.WithCaptureDelay(c.CaptureDelay))
	}
	deps.Sandbox = cardslog.NewLoggingSandbox(sandbox, logger)
	deps.Capturer = cardslog.NewLoggingCapturer(capturer, logger)
	deps.Bundler = cardslog.NewLoggingBundler(zip.NewBundler(), logger)
	deps.ImageStore = func(dir string) cardsnap.ImageStore {
		return cardslog.NewLoggingImageStore(fs.NewImageStore(dir), logger)
	}

	if !c.Enrich {
		return nil
	}

	enricher := m.Enricher
	if enricher == nil {
		if c.APIKey == "" {
			fmt.Fprintln(deps.Stderr, "Hint: Get an API key at https://aistudio.google.com/apikey")
			return cardsnap.Errorf(cardsnap.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		opts := []gemini.EnricherOption{gemini.WithModel(c.Model)}
		if c.Rate > 0 {
			opts = append(opts, gemini.WithLimiter(rate.NewLimiter(rate.Limit(c.Rate), 1)))
		}
		enricher = gemini.NewEnricher(client, htmltomarkdown.NewConverter(), opts...)
	}
	deps.Enricher = cardslog.NewLoggingEnricher(enricher, logger)
	return nil
}

// newLogger returns a structured logger writing human-readable lines to w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	return slog.New(handler)
}
