package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// BundleDir returns the path the bundle is extracted to.
func BundleDir(dataDir string) string {
	return filepath.Join(dataDir, "bundle")
}

// EnsureExtracted writes the default bundle to $dataDir/bundle/ when the
// version changes. A .version marker file tracks the last extracted version.
func EnsureExtracted(dataDir, version string) error {
	return defaultBundle.EnsureExtracted(dataDir, version)
}

// EnsureExtracted writes every asset under BundleDir(dataDir) using the same
// layout as a project install (skills/<name>/SKILL.md, agents/<name>.md).
func (b *Bundle) EnsureExtracted(dataDir, version string) error {
	dir := BundleDir(dataDir)
	marker := filepath.Join(dir, ".version")

	if data, err := os.ReadFile(marker); err == nil && string(data) == version {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bundle dir: %w", err)
	}

	write := func(rel string, content []byte) error {
		dest := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		return nil
	}

	for _, a := range b.skills {
		if err := write(filepath.Join("skills", a.Name, "SKILL.md"), a.Content); err != nil {
			return err
		}
	}
	for _, a := range b.agents {
		if err := write(filepath.Join("agents", a.Name+".md"), a.Content); err != nil {
			return err
		}
	}

	if err := os.WriteFile(marker, []byte(version), 0o644); err != nil {
		return fmt.Errorf("write version marker: %w", err)
	}
	return nil
}
