package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mkowal/docmap"
)

// Writer writes extraction results to disk as JSON.
// Results are written to a temporary file and moved atomically into place,
// so readers never observe a partially written file.
type Writer struct {
	path string
}

// NewWriter creates a new Writer that writes to the given path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteModules writes modules to the configured path.
func (w *Writer) WriteModules(modules []docmap.Module) error {
	data, err := json.MarshalIndent(modules, "", "  ")
	if err != nil {
		return docmap.Errorf(docmap.EINTERNAL, "encode result: %v", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".tmp*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, w.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
