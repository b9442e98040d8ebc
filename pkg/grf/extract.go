package grf

import (
	"fmt"
	"os"
	"path/filepath"
)

// Extract decompresses the named entry and writes it to
// destDir/data/<name>, creating parent directories as needed and
// overwriting any existing file.
func (a *Archive) Extract(name, destDir string) error {
	p, err := a.Open(name)
	if err != nil {
		return err
	}

	target := filepath.Join(destDir, "data", filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", target, err)
	}
	if err := os.WriteFile(target, p.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}
