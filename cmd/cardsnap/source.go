package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/cardsnap"
	"golang.org/x/sync/errgroup"
)

// readSources reads the HTML files at paths concurrently, keeping their order.
func readSources(ctx context.Context, paths []string) ([]*cardsnap.Source, error) {
	if len(paths) == 0 {
		return nil, cardsnap.Errorf(cardsnap.EINVALID, "no files selected")
	}
	if len(paths) > cardsnap.MaxSources {
		return nil, cardsnap.Errorf(cardsnap.ETOOMANYFILES, "maximum %d files allowed at once", cardsnap.MaxSources)
	}

	sources := make([]*cardsnap.Source, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if errors.Is(err, os.ErrNotExist) {
				return cardsnap.Errorf(cardsnap.ENOTFOUND, "file not found: %s", path)
			} else if err != nil {
				return cardsnap.Errorf(cardsnap.EINVALID, "reading %s: %v", path, err)
			}
			sources[i] = &cardsnap.Source{Name: filepath.Base(path), HTML: string(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sources, nil
}
