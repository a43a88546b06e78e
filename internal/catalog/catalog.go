package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"intlex/internal/extract"
)

// Path maps a source unit path to its catalog file under outDir. The
// unit's path relative to baseDir is mirrored, with the source extension
// replaced by .json. Paths outside baseDir fall back to the base name.
func Path(outDir, baseDir, unitPath string) string {
	rel, err := filepath.Rel(baseDir, unitPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(unitPath)
	}
	ext := filepath.Ext(rel)
	rel = strings.TrimSuffix(rel, ext) + ".json"
	return filepath.Join(outDir, rel)
}

// Write stores the extracted messages as a JSON array at path. The file
// is written to a temp file first and renamed into place so readers never
// observe a partial catalog.
func Write(path string, msgs []extract.Descriptor) error {
	if msgs == nil {
		msgs = []extract.Descriptor{}
	}
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
