// Package textfile loads scripts from disk for synthesis.
package textfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/speechkit/internal/core"
)

// Reader adapts Read to core.TextReader.
type Reader struct{}

var _ core.TextReader = Reader{}

func (Reader) Read(path string) (string, error) { return Read(path) }

// Read returns the file's contents as text. Plain text files must be valid
// UTF-8 and are returned unchanged; documents go through docconv.
func Read(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".text", ".md":
		return readPlain(path)
	case ".html", ".htm":
		return readHTML(path)
	default:
		return readDocument(path)
	}
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", core.ErrInvalidInput, path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", core.ErrDecode, path)
	}
	return string(data), nil
}

func readDocument(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %w", core.ErrInvalidInput, path, err)
	}
	defer f.Close()

	mimeType := docconv.MimeTypeByExtension(path)
	res, err := docconv.Convert(f, mimeType, false)
	if err != nil {
		return "", fmt.Errorf("%w: convert %s (%s): %w", core.ErrDecode, path, mimeType, err)
	}
	return nonEmpty(path, res.Body)
}

// readHTML converts in process. docconv.Convert would shell out to tidy first.
func readHTML(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", core.ErrInvalidInput, path, err)
	}
	return nonEmpty(path, docconv.HTMLToText(bytes.NewReader(data)))
}

// nonEmpty rejects documents that convert to nothing, so a bad conversion
// never passes for an empty script.
func nonEmpty(path, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s has no extractable text", core.ErrDecode, path)
	}
	return text, nil
}
