package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultYAML is the rule document shipped with the binary.
//
//go:embed default.yaml
var DefaultYAML []byte

// WriteDefault writes DefaultYAML to path unless a file already exists there.
// It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat rules %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create rules dir: %w", err)
	}
	if err := os.WriteFile(path, DefaultYAML, 0o644); err != nil {
		return false, fmt.Errorf("write rules %s: %w", path, err)
	}
	return true, nil
}
