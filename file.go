package hmap

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadFile reads and decodes an HMAP file.
// Files that do not start with an HMAP magic fail with ErrUnsupportedFormat.
func ReadFile(path string) (*Heightmap, error) {
	data, err := readContainer(path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// UpdateFile replaces one surface of the HMAP file src and writes the result
// to dst. dst may equal src; the write goes through a temporary file in the
// destination directory followed by a rename.
func UpdateFile(src, dst string, replacement *Surface, which Selector) error {
	data, err := readContainer(src)
	if err != nil {
		return err
	}

	out, err := Update(data, replacement, which)
	if err != nil {
		return err
	}

	return WriteFile(dst, out)
}

// WriteFile writes data to path via a temporary file and rename.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: sync %q: %v", ErrWriteFile, path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %q: %v", ErrWriteFile, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename to %q: %v", ErrWriteFile, path, err)
	}

	return nil
}

func readContainer(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	if !Sniff(data) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	return data, nil
}
