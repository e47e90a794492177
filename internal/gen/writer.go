package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Path returns where the file is written.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// WriteFiles writes every generated file next to its package sources.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if file.Dir == "" {
			return fmt.Errorf("writing file %s: no package directory", file.Filename)
		}

		err := os.MkdirAll(file.Dir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(file.Path(), file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// Stale returns the files whose on-disk content is missing or differs.
func Stale(files []GeneratedFile) ([]GeneratedFile, error) {
	var out []GeneratedFile

	for _, file := range files {
		current, err := os.ReadFile(file.Path())

		switch {
		case errors.Is(err, fs.ErrNotExist):
			out = append(out, file)
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", file.Path(), err)
		case !bytes.Equal(current, file.Content):
			out = append(out, file)
		}
	}

	return out, nil
}
