package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fwojciec/cardsnap"
	"github.com/fwojciec/cardsnap/batch"
	"github.com/fwojciec/cardsnap/fs"
)

// ManifestName is the file written next to the archive by --enrich.
const ManifestName = "cards.json"

// ManifestEntry describes one card in cards.json.
type ManifestEntry struct {
	File       string               `json:"file,omitempty"`
	Source     string               `json:"source"`
	Hash       string               `json:"hash"`
	Status     cardsnap.Status      `json:"status"`
	Error      string               `json:"error,omitempty"`
	Enrichment *cardsnap.Enrichment `json:"enrichment,omitempty"`
}

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	sources, err := readSources(deps.Ctx, c.Files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardsnap.ErrorMessage(err))
		return err
	}

	b := &batch.Batch{
		Extractor: deps.Extractor,
		Sandbox:   deps.Sandbox,
		Capturer:  deps.Capturer,
	}
	if err := b.Load(sources); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardsnap.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Found %d cards in %d files\n", len(b.Cards()), len(sources))

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressLoading:
			verb := "Capturing"
			if event.Stage == batch.StageEnrich {
				verb = "Enriching"
			}
			fmt.Fprintf(deps.Stdout, "  %s %s\n", batch.FormatProgress(verb, event.Index, event.Total), cardsnap.Filename(event.Index))
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", cardsnap.Filename(event.Index), describe(event.Error))
		}
	}

	result, runErr := b.Process(deps.Ctx, progress)
	if result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(runErr))
		if cardsnap.ErrorCode(runErr) == cardsnap.ESANDBOX {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or set CARDSNAP_BROWSER")
		}
		return runErr
	}

	if c.Enrich && runErr == nil {
		if _, err := b.Enrich(deps.Ctx, deps.Enricher, progress); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cardsnap.ErrorMessage(err))
			return err
		}
	}

	cards := b.Cards()

	var n int
	if err := fs.WriteFile(c.Output, func(w io.Writer) error {
		var err error
		n, err = deps.Bundler.Bundle(w, cards)
		return err
	}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardsnap.ErrorMessage(err))
		return err
	}

	if c.Dir != "" {
		if err := saveImages(deps, c.Dir, cards); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cardsnap.ErrorMessage(err))
			return err
		}
	}

	if c.Enrich {
		path := filepath.Join(filepath.Dir(c.Output), ManifestName)
		if err := fs.WriteFile(path, func(w io.Writer) error {
			return writeManifest(w, cards)
		}); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cardsnap.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d images to %s", n, c.Output)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)

	if runErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describe(runErr))
	}
	return runErr
}

// saveImages writes every captured card to dir as card-NN.png.
func saveImages(deps *Dependencies, dir string, cards []*cardsnap.Card) error {
	store := deps.ImageStore(dir)
	for i, card := range cards {
		if !card.Captured() {
			continue
		}
		_, data, err := cardsnap.DecodeDataURL(card.Image)
		if err == nil {
			err = store.Save(deps.Ctx, cardsnap.Filename(i), data)
		}
		if err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}

// describe returns the message of an application error, or the raw text of
// any other error.
func describe(err error) string {
	var e *cardsnap.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func writeManifest(w io.Writer, cards []*cardsnap.Card) error {
	entries := make([]ManifestEntry, len(cards))
	for i, card := range cards {
		entries[i] = ManifestEntry{
			Source:     card.Source,
			Hash:       card.Hash,
			Status:     card.Status,
			Error:      card.Error,
			Enrichment: card.Enrichment,
		}
		if card.Captured() {
			entries[i].File = cardsnap.Filename(i)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
