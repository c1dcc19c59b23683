package storage

import (
	"path/filepath"
	"strings"
)

// filePrefix precedes the term in every output file name.
const filePrefix = "google_maps_data_"

// FileStem derives the output file name (without extension) for a term.
// Spaces become underscores; path separators are replaced as well so a term
// can never escape the output directory.
func FileStem(term string) string {
	safe := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(term)
	return filePrefix + safe
}

func outputPath(dir, term, ext string) string {
	return filepath.Join(dir, FileStem(term)+ext)
}
