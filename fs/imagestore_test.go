package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cardsnap"
	"github.com/fwojciec/cardsnap/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Image Storage
// Images are staged next to their final names and appear only on commit.

func names(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestImageStore_SaveDoesNotPublishBeforeCommit(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	dir := filepath.Join(t.TempDir(), "cards")
	store := fs.NewImageStore(dir)

	// When I save an image
	err := store.Save(context.Background(), "card-01.png", []byte("png"))

	// Then no error occurs
	require.NoError(t, err)

	// And the final file does not exist yet
	_, err = os.Stat(filepath.Join(dir, "card-01.png"))
	assert.True(t, os.IsNotExist(err), "image should not exist until commit")
}

func TestImageStore_CommitPublishesImages(t *testing.T) {
	t.Parallel()

	// Given a store with saved images
	dir := filepath.Join(t.TempDir(), "cards")
	store := fs.NewImageStore(dir)
	require.NoError(t, store.Save(context.Background(), "card-01.png", []byte("one")))
	require.NoError(t, store.Save(context.Background(), "card-03.png", []byte("three")))

	// When I commit
	err := store.Commit()

	// Then the directory holds exactly the images
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "card-03.png"))
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))
	assert.Equal(t, []string{"card-01.png", "card-03.png"}, names(t, dir))
}

func TestImageStore_CommitKeepsExistingFiles(t *testing.T) {
	t.Parallel()

	// Given a directory that already holds the user's files
	dir := filepath.Join(t.TempDir(), "pictures")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "holiday.jpg"), []byte("jpeg"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "card-01.png"), []byte("old"), 0644))

	// When a run saves into it and commits
	store := fs.NewImageStore(dir)
	require.NoError(t, store.Save(context.Background(), "card-01.png", []byte("new")))
	require.NoError(t, store.Commit())

	// Then unrelated files survive
	data, err := os.ReadFile(filepath.Join(dir, "holiday.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	// And images with the same name are replaced
	data, err = os.ReadFile(filepath.Join(dir, "card-01.png"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.Equal(t, []string{"card-01.png", "holiday.jpg"}, names(t, dir))
}

func TestImageStore_AbortRemovesStagedImages(t *testing.T) {
	t.Parallel()

	// Given a directory with a user's file and a store with staged images
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0644))
	store := fs.NewImageStore(dir)
	require.NoError(t, store.Save(context.Background(), "card-01.png", []byte("png")))

	// When I abort
	err := store.Abort()

	// Then no error occurs
	require.NoError(t, err)

	// And only the user's file remains
	assert.Equal(t, []string{"notes.txt"}, names(t, dir))
}

func TestImageStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	store := fs.NewImageStore(t.TempDir())

	for _, name := range []string{"", "..", "../card-01.png", `sub\card.png`, "a/b.png"} {
		err := store.Save(context.Background(), name, []byte("x"))
		require.Error(t, err, name)
		assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(err), name)
	}
}

func TestImageStore_SaveHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fs.NewImageStore(t.TempDir()).Save(ctx, "card-01.png", []byte("x"))

	require.ErrorIs(t, err, context.Canceled)
}
