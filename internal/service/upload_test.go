package service

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"college-chat/internal/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploads(t *testing.T) *UploadService {
	t.Helper()
	svc, err := NewUploadService(filepath.Join(t.TempDir(), "media", "uploads"), "/media/uploads/")
	require.NoError(t, err)
	return svc
}

func TestIngestText(t *testing.T) {
	svc := newUploads(t)

	name, text, err := svc.Ingest("notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", name)
	assert.Equal(t, "hello", text)
	assert.FileExists(t, filepath.Join(svc.Dir(), "notes.txt"))
}

func TestIngestStripsDirectories(t *testing.T) {
	svc := newUploads(t)

	name, _, err := svc.Ingest("../../etc/passwd.txt", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd.txt", name)
	assert.FileExists(t, filepath.Join(svc.Dir(), "passwd.txt"))

	name, _, err = svc.Ingest(`C:\Users\me\essay.txt`, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "essay.txt", name)

	_, _, err = svc.Ingest("..", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestIngestUnsupportedRemovesFile(t *testing.T) {
	svc := newUploads(t)

	r := &countingReader{r: strings.NewReader("MZ")}
	_, _, err := svc.Ingest("setup.exe", r)
	require.ErrorIs(t, err, extract.ErrUnsupportedType)
	assert.Contains(t, err.Error(), ".exe")
	assert.Zero(t, r.n, "body must not be read for an unsupported type")
	assert.NoFileExists(t, filepath.Join(svc.Dir(), "setup.exe"))
}

func TestIngestParseFailureRemovesFile(t *testing.T) {
	svc := newUploads(t)

	_, _, err := svc.Ingest("broken.docx", strings.NewReader("not a zip"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, extract.ErrUnsupportedType))
	assert.Contains(t, err.Error(), "failed to process file")
	assert.NoFileExists(t, filepath.Join(svc.Dir(), "broken.docx"))
}

func TestListAndDeleteUploads(t *testing.T) {
	svc := newUploads(t)
	for _, n := range []string{"b.txt", "a.txt", "my notes.txt"} {
		_, _, err := svc.Ingest(n, strings.NewReader(n))
		require.NoError(t, err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(svc.Dir(), "subdir"), 0o755))

	files, err := svc.List()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, 1, files[0].ID)
	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, "/media/uploads/a.txt", files[0].URL)
	assert.Equal(t, "/media/uploads/my%20notes.txt", files[2].URL)

	require.NoError(t, svc.Delete("a.txt"))
	assert.ErrorIs(t, svc.Delete("a.txt"), ErrFileNotFound)
	assert.ErrorIs(t, svc.Delete(".."), ErrFileNotFound)

	files, err = svc.List()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestSameNameOverwrites(t *testing.T) {
	svc := newUploads(t)

	_, _, err := svc.Ingest("notes.txt", strings.NewReader("v1"))
	require.NoError(t, err)
	_, text, err := svc.Ingest("notes.txt", strings.NewReader("v2"))
	require.NoError(t, err)
	assert.Equal(t, "v2", text)

	files, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestIngestRejectsInvalidUTF8Text(t *testing.T) {
	svc := newUploads(t)

	_, _, err := svc.Ingest("latin1.txt", strings.NewReader("caf\xe9"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process file")
	assert.NoFileExists(t, filepath.Join(svc.Dir(), "latin1.txt"))
}
