package textfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/core/textfile"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestReadPlainText(t *testing.T) {
	path := writeFile(t, "script.txt", []byte("Héllo wörld\nsecond line\n"))

	got, err := textfile.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Héllo wörld\nsecond line\n", got)
}

func TestReadWithoutExtension(t *testing.T) {
	path := writeFile(t, "SCRIPT", []byte("plain"))

	got, err := textfile.Reader{}.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
}

func TestReadInvalidUTF8(t *testing.T) {
	path := writeFile(t, "bad.txt", []byte{0xff, 0xfe, 0x00})

	_, err := textfile.Read(path)
	assert.ErrorIs(t, err, core.ErrDecode)
}

func TestReadMissingFile(t *testing.T) {
	_, err := textfile.Read(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestReadHTMLDocument(t *testing.T) {
	path := writeFile(t, "page.html", []byte("<html><head><title>t</title></head><body><p>Read me aloud</p></body></html>"))

	got, err := textfile.Read(path)
	require.NoError(t, err)
	assert.Contains(t, got, "Read me aloud")
	assert.NotContains(t, got, "<p>")
}

func TestReadHTMLWithoutText(t *testing.T) {
	path := writeFile(t, "blank.htm", []byte("<html><body><img src=\"x.png\"></body></html>"))

	got, err := textfile.Read(path)
	assert.ErrorIs(t, err, core.ErrDecode)
	assert.Empty(t, got)
}

func TestReadDocumentConvertingToNothing(t *testing.T) {
	path := writeFile(t, "empty.xml", []byte("<root></root>"))

	_, err := textfile.Read(path)
	assert.ErrorIs(t, err, core.ErrDecode)
}
