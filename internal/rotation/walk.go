package rotation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/claudia-app/claudia-vault/internal/record"
)

const (
	foldersDir   = "folders"
	passwordsDir = "passwords"
	recordExt    = ".md"
)

// collect lists every record under <root>/folders that is sealed with the
// master password, as slash-separated paths relative to root. Hidden files
// and directories are skipped. A malformed encrypted record aborts the
// walk so that nothing is rewritten.
func collect(root string) ([]string, error) {
	base := filepath.Join(root, foldersDir)

	var paths []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == base && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if path != base && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || filepath.Ext(d.Name()) != recordExt {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		eligible, err := isRotatable(path, rel)
		if err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		if eligible {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect records: %w", err)
	}

	slices.Sort(paths)
	return paths, nil
}

func isRotatable(path, rel string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	text := string(raw)

	if record.IsEncryptedFormat(text) {
		if _, err := record.Parse(text); err != nil {
			return false, err
		}
		return true, nil
	}
	return inPasswordsDir(rel) && record.IsSealedRecord(text), nil
}

func inPasswordsDir(rel string) bool {
	parts := strings.Split(rel, "/")
	return slices.Contains(parts[:len(parts)-1], passwordsDir)
}
