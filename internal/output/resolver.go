// Package output places rendered chart files. Charts land in a primary
// shared directory; when that directory is absent they fall back to a
// web-servable directory instead.
//
// Resolution is an existence check only. Whether the chosen directory is
// actually writable surfaces at write time, reported with the attempted
// path. A pre-flight writability probe would race the real write, so the
// defer-to-write-time policy is deliberate.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolver picks the destination directory for rendered charts.
type Resolver struct {
	primaryDir  string
	fallbackDir string
}

// NewResolver creates a resolver with a primary and a fallback directory.
func NewResolver(primaryDir, fallbackDir string) *Resolver {
	return &Resolver{
		primaryDir:  primaryDir,
		fallbackDir: fallbackDir,
	}
}

// Resolve returns the full destination path for filename. The filename is
// reduced to its base name so a caller-supplied value cannot escape the
// output directory.
func (r *Resolver) Resolve(filename string) string {
	dir := r.Dir()
	return filepath.Join(dir, filepath.Base(filename))
}

// Dir returns the directory charts resolve into right now: the primary
// directory if it exists, the fallback otherwise.
func (r *Resolver) Dir() string {
	if info, err := os.Stat(r.primaryDir); err == nil && info.IsDir() {
		return r.primaryDir
	}
	return r.fallbackDir
}

// Write stores the rendered chart bytes at path.
func (r *Resolver) Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write chart to %s: %w", path, err)
	}
	return nil
}
