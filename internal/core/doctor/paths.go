package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// PathKind is the kind of filesystem entry a PathSpec expects.
type PathKind uint8

const (
	KindDir PathKind = iota
	KindFile
)

// PathSpec describes one expected directory or file. When Content is set for
// a file (or always, for a directory) a missing entry is fixable.
type PathSpec struct {
	Label   string
	Path    string
	Kind    PathKind
	Content []byte
}

func (s PathSpec) fixable() bool {
	return s.Kind == KindDir || s.Content != nil
}

// PathCheck verifies that directories and files exist with the right kind.
// Missing entries warn; entries of the wrong kind fail.
type PathCheck struct {
	specs   []PathSpec
	autofix bool
}

// NewPathCheck creates a new path check. With autofix, missing fixable
// entries are created.
func NewPathCheck(specs []PathSpec, autofix bool) *PathCheck {
	return &PathCheck{specs: specs, autofix: autofix}
}

func (c *PathCheck) Name() string {
	return "Paths"
}

func (c *PathCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	for _, spec := range c.specs {
		result.Items = append(result.Items, c.check(spec))
	}
	return result
}

func (c *PathCheck) check(spec PathSpec) CheckItem {
	label := fmt.Sprintf("%s (%s)", spec.Label, spec.Path)

	info, err := os.Stat(spec.Path)
	switch {
	case os.IsNotExist(err):
		if c.autofix && spec.fixable() {
			if err := create(spec); err != nil {
				return CheckItem{Label: label, Status: StatusFail, Detail: fmt.Sprintf("create failed: %v", err)}
			}
			return CheckItem{Label: label, Status: StatusPass, Detail: "created"}
		}

		detail := "directory does not exist"
		if spec.Kind == KindFile {
			detail = "file does not exist"
		}
		return CheckItem{Label: label, Status: StatusWarn, Detail: detail, Fixable: spec.fixable()}
	case err != nil:
		return CheckItem{Label: label, Status: StatusFail, Detail: fmt.Sprintf("inaccessible: %v", err)}
	case spec.Kind == KindDir && !info.IsDir():
		return CheckItem{Label: label, Status: StatusFail, Detail: "not a directory"}
	case spec.Kind == KindFile && !info.Mode().IsRegular():
		return CheckItem{Label: label, Status: StatusFail, Detail: "not a file"}
	}

	return CheckItem{Label: label, Status: StatusPass}
}

func create(spec PathSpec) error {
	if spec.Kind == KindDir {
		return os.MkdirAll(spec.Path, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(spec.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(spec.Path, spec.Content, 0o644)
}
