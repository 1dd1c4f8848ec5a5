// Package fs provides file-based documentation input and result output.
package fs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/mkowal/docmap"
)

// Ensure Reader implements docmap.FileReader at compile time.
var _ docmap.FileReader = (*Reader)(nil)

// Reader reads local documentation files for extraction. Markdown and plain
// text are read through unchanged; PDFs are reduced to their plain text.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the text content of the documentation file at path.
func (r *Reader) Read(path string) (string, error) {
	var content string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		content, err = readPDF(path)
	default:
		content, err = readText(path)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(content) == "" {
		return "", docmap.Errorf(docmap.EUNPROCESSABLE, "file has no usable text: %s", path)
	}
	return content, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", docmap.Errorf(docmap.ENOTFOUND, "file not found: %s", path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", docmap.Errorf(docmap.ENOTFOUND, "file not found: %s", path)
		}
		return "", docmap.Errorf(docmap.EUNPROCESSABLE, "open pdf %s: %v", path, err)
	}
	defer f.Close()

	text, err := reader.GetPlainText()
	if err != nil {
		return "", docmap.Errorf(docmap.EUNPROCESSABLE, "extract pdf text from %s: %v", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(text); err != nil {
		return "", docmap.Errorf(docmap.EUNPROCESSABLE, "extract pdf text from %s: %v", path, err)
	}
	return buf.String(), nil
}
