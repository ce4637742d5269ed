package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/cardsnap"
	"github.com/fwojciec/cardsnap/batch"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	sources, err := readSources(deps.Ctx, c.Files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardsnap.ErrorMessage(err))
		return err
	}

	b := &batch.Batch{Extractor: deps.Extractor}
	if err := b.Load(sources); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cardsnap.ErrorMessage(err))
		return err
	}
	cards := b.Cards()

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	for i, card := range cards {
		fmt.Fprintf(deps.Stdout, "%s  %-30s  %9s  %9s  %s\n",
			cardsnap.Filename(i),
			batch.TruncateName(card.Source, 30),
			batch.FormatBytes(len(card.Markup)),
			batch.FormatBytes(len(card.Styles)),
			card.Hash,
		)
	}
	fmt.Fprintf(deps.Stdout, "Found %d cards in %d files\n", len(cards), len(sources))
	return nil
}
