package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*LocalStorage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	ls, err := NewLocalStorage(dir, "uploads")
	require.NoError(t, err)
	ls.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return ls, dir
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "week-1-notes.pdf", SanitizeFilename("week 1  notes.pdf"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "a-b.txt", SanitizeFilename("C:\\tmp\\a b.txt"))
}

func TestSaveWritesUnderSectionDirectory(t *testing.T) {
	ls, dir := newTestStorage(t)

	url, err := ls.Save(strings.NewReader("hello"), "Week 1.pdf", "assignments/answers")
	require.NoError(t, err)
	assert.Equal(t, "uploads/assignments/answers/1700000000000-Week-1.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "assignments", "answers", "1700000000000-Week-1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.True(t, ls.Exists(url))
}

func TestDeleteFile(t *testing.T) {
	ls, _ := newTestStorage(t)

	url, err := ls.Save(strings.NewReader("x"), "a.pdf", "notes")
	require.NoError(t, err)

	require.NoError(t, ls.DeleteFile(url))
	assert.False(t, ls.Exists(url))

	// Missing files are not an error
	assert.NoError(t, ls.DeleteFile(url))
}

func TestGetFullPathRejectsOutsidePaths(t *testing.T) {
	ls, dir := newTestStorage(t)

	for _, p := range []string{"/etc/passwd", "uploads/../secret", "other/notes/a.pdf"} {
		_, err := ls.GetFullPath(p)
		assert.ErrorIs(t, err, ErrOutsideStorage, p)
		assert.ErrorIs(t, ls.DeleteFile(p), ErrOutsideStorage, p)
	}

	full, err := ls.GetFullPath(`uploads\notes\a.pdf`)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "notes", "a.pdf"), full)
}
