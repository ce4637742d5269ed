package cardsnap

import "context"

// ImageStore persists individual card images with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Commit() error
	Abort() error
}
