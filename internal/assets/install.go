package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OpenCodeDir is the project directory OpenCode reads skills and agents from.
const OpenCodeDir = ".opencode"

const gitignore = `node_modules
package.json
bun.lock
.gitignore
`

// InstallOptions controls what Install writes.
type InstallOptions struct {
	// Skills and Agents are name patterns. Nil selects every bundled asset.
	Skills []string
	Agents []string

	NoSkills bool
	NoAgents bool
	// Force overwrites existing asset files. The .gitignore is never overwritten.
	Force bool
	// DryRun reports the planned actions without touching the filesystem.
	DryRun bool
}

// ActionKind is what Install did, or would do, to one path.
type ActionKind uint8

const (
	ActionCreate ActionKind = iota
	ActionOverwrite
	ActionSkip
)

func (k ActionKind) String() string {
	switch k {
	case ActionOverwrite:
		return "overwrite"
	case ActionSkip:
		return "skip"
	default:
		return "create"
	}
}

// Action is one planned or performed filesystem step. Path is relative to
// the install base directory. Asset is empty for directories and .gitignore.
type Action struct {
	Kind  ActionKind
	Path  string
	Asset string
}

// InstallResult summarizes an install. In a dry run the counts and names
// describe what would have happened.
type InstallResult struct {
	DryRun  bool
	Actions []Action

	Created int
	Skipped int

	SkillsInstalled []string
	SkillsSkipped   []string
	AgentsInstalled []string
	AgentsSkipped   []string
}

// Install installs the default bundle into baseDir.
func Install(baseDir string, opts InstallOptions) (InstallResult, error) {
	return defaultBundle.Install(baseDir, opts)
}

// Install creates .opencode/ under baseDir and writes the selected skills
// and agents into it. Requested names are resolved before anything is
// written, so an unknown name leaves the filesystem untouched.
func (b *Bundle) Install(baseDir string, opts InstallOptions) (InstallResult, error) {
	var skills, agents []Asset
	var err error
	if !opts.NoSkills {
		if skills, err = b.Select(KindSkill, opts.Skills); err != nil {
			return InstallResult{}, err
		}
	}
	if !opts.NoAgents {
		if agents, err = b.Select(KindAgent, opts.Agents); err != nil {
			return InstallResult{}, err
		}
	}

	in := installer{base: baseDir, opts: opts, res: InstallResult{DryRun: opts.DryRun}}

	if err := in.dir(OpenCodeDir); err != nil {
		return in.res, err
	}
	if _, err := in.file(filepath.Join(OpenCodeDir, ".gitignore"), "", []byte(gitignore), false); err != nil {
		return in.res, err
	}

	if !opts.NoSkills {
		if err := in.dir(filepath.Join(OpenCodeDir, "skill")); err != nil {
			return in.res, err
		}
		for _, a := range skills {
			p := filepath.Join(OpenCodeDir, "skill", a.Name, "SKILL.md")
			wrote, err := in.file(p, a.Name, a.Content, opts.Force)
			if err != nil {
				return in.res, err
			}
			if wrote {
				in.res.SkillsInstalled = append(in.res.SkillsInstalled, a.Name)
			} else {
				in.res.SkillsSkipped = append(in.res.SkillsSkipped, a.Name)
			}
		}
	}

	if !opts.NoAgents {
		if err := in.dir(filepath.Join(OpenCodeDir, "agent")); err != nil {
			return in.res, err
		}
		for _, a := range agents {
			p := filepath.Join(OpenCodeDir, "agent", a.Name+".md")
			wrote, err := in.file(p, a.Name, a.Content, opts.Force)
			if err != nil {
				return in.res, err
			}
			if wrote {
				in.res.AgentsInstalled = append(in.res.AgentsInstalled, a.Name)
			} else {
				in.res.AgentsSkipped = append(in.res.AgentsSkipped, a.Name)
			}
		}
	}

	return in.res, nil
}

type installer struct {
	base string
	opts InstallOptions
	res  InstallResult
}

func (in *installer) record(kind ActionKind, rel, asset string) {
	in.res.Actions = append(in.res.Actions, Action{Kind: kind, Path: rel, Asset: asset})
	if kind == ActionSkip {
		in.res.Skipped++
	} else {
		in.res.Created++
	}
}

func (in *installer) dir(rel string) error {
	full := filepath.Join(in.base, rel)

	info, err := os.Stat(full)
	switch {
	case err == nil && info.IsDir():
		in.record(ActionSkip, rel, "")
		return nil
	case err == nil:
		return fmt.Errorf("%s exists and is not a directory", full)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", full, err)
	}

	if !in.opts.DryRun {
		if err := os.MkdirAll(full, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", full, err)
		}
	}
	in.record(ActionCreate, rel, "")
	return nil
}

// file writes content to rel unless it exists and force is off. It reports
// whether the file was (or in a dry run would be) written.
func (in *installer) file(rel, asset string, content []byte, force bool) (bool, error) {
	full := filepath.Join(in.base, rel)

	kind := ActionCreate
	if _, err := os.Stat(full); err == nil {
		if !force {
			in.record(ActionSkip, rel, asset)
			return false, nil
		}
		kind = ActionOverwrite
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", full, err)
	}

	if !in.opts.DryRun {
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return false, fmt.Errorf("create %s: %w", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, content, 0o644); err != nil {
			return false, fmt.Errorf("write %s: %w", full, err)
		}
	}
	in.record(kind, rel, asset)
	return true, nil
}
