// Package assets bundles the OpenCode skills and agents shipped with aiandi
// and installs them into projects.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
)

//go:embed skills/*/SKILL.md agents/*.md
var bundleFS embed.FS

// Kind distinguishes skills from agents.
type Kind uint8

const (
	KindSkill Kind = iota
	KindAgent
)

func (k Kind) String() string {
	if k == KindAgent {
		return "agent"
	}
	return "skill"
}

// Meta is the YAML front matter of an asset file.
type Meta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Mode        string `yaml:"mode"`
	Model       string `yaml:"model"`
}

// Asset is one bundled skill or agent.
type Asset struct {
	Kind Kind
	Name string
	Meta Meta
	// Content is the complete file, front matter included.
	Content []byte
	// Body is the markdown after the front matter.
	Body string
}

// Bundle is a parsed set of assets, each kind sorted by name.
type Bundle struct {
	skills []Asset
	agents []Asset
}

var defaultBundle = mustLoad(bundleFS)

// Default returns the bundle compiled into the binary.
func Default() *Bundle { return defaultBundle }

func mustLoad(fsys fs.FS) *Bundle {
	b, err := Load(fsys)
	if err != nil {
		panic(fmt.Sprintf("assets: %v", err))
	}
	return b
}

// Load parses skills/<name>/SKILL.md and agents/<name>.md from fsys.
func Load(fsys fs.FS) (*Bundle, error) {
	skillFiles, err := fs.Glob(fsys, "skills/*/SKILL.md")
	if err != nil {
		return nil, err
	}
	agentFiles, err := fs.Glob(fsys, "agents/*.md")
	if err != nil {
		return nil, err
	}

	b := &Bundle{}
	for _, p := range skillFiles {
		a, err := parseAsset(fsys, KindSkill, path.Base(path.Dir(p)), p)
		if err != nil {
			return nil, err
		}
		b.skills = append(b.skills, a)
	}
	for _, p := range agentFiles {
		a, err := parseAsset(fsys, KindAgent, strings.TrimSuffix(path.Base(p), ".md"), p)
		if err != nil {
			return nil, err
		}
		b.agents = append(b.agents, a)
	}

	byName := func(a, b Asset) int { return strings.Compare(a.Name, b.Name) }
	slices.SortFunc(b.skills, byName)
	slices.SortFunc(b.agents, byName)
	return b, nil
}

func parseAsset(fsys fs.FS, kind Kind, name, p string) (Asset, error) {
	content, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Asset{}, fmt.Errorf("read %s: %w", p, err)
	}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		return Asset{}, fmt.Errorf("parse front matter of %s: %w", p, err)
	}

	switch {
	case meta.Name == "":
		meta.Name = name
	case meta.Name != name:
		return Asset{}, fmt.Errorf("%s: front matter name %q does not match %q", p, meta.Name, name)
	}
	if meta.Description == "" {
		return Asset{}, fmt.Errorf("%s: missing description", p)
	}

	return Asset{
		Kind:    kind,
		Name:    name,
		Meta:    meta,
		Content: content,
		Body:    strings.TrimSpace(string(body)),
	}, nil
}

// All returns the assets of kind sorted by name.
func (b *Bundle) All(kind Kind) []Asset {
	if kind == KindAgent {
		return slices.Clone(b.agents)
	}
	return slices.Clone(b.skills)
}

// Names returns the sorted asset names of kind.
func (b *Bundle) Names(kind Kind) []string {
	all := b.All(kind)
	names := make([]string, 0, len(all))
	for _, a := range all {
		names = append(names, a.Name)
	}
	return names
}

// Get looks up an asset by exact name.
func (b *Bundle) Get(kind Kind, name string) (Asset, bool) {
	for _, a := range b.All(kind) {
		if a.Name == name {
			return a, true
		}
	}
	return Asset{}, false
}

// ErrUnknownAsset is matched by every UnknownError.
var ErrUnknownAsset = errors.New("unknown asset")

// UnknownError reports a requested name or pattern that matched nothing.
type UnknownError struct {
	Kind      Kind
	Name      string
	Available []string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown %s %q (available: %s)", e.Kind, e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownError) Is(target error) bool { return target == ErrUnknownAsset }

// Select resolves requested names to assets. Entries may be doublestar glob
// patterns. A nil request selects everything. The result keeps request order
// and contains each asset once.
func (b *Bundle) Select(kind Kind, requested []string) ([]Asset, error) {
	all := b.All(kind)
	if requested == nil {
		return all, nil
	}

	var (
		selected []Asset
		seen     = make(map[string]bool)
	)
	for _, raw := range requested {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid %s pattern %q", kind, pattern)
		}

		matched := false
		for _, a := range all {
			ok, err := doublestar.Match(pattern, a.Name)
			if err != nil {
				return nil, fmt.Errorf("match %s pattern %q: %w", kind, pattern, err)
			}
			if !ok {
				continue
			}
			matched = true
			if !seen[a.Name] {
				seen[a.Name] = true
				selected = append(selected, a)
			}
		}
		if !matched {
			return nil, &UnknownError{Kind: kind, Name: pattern, Available: b.Names(kind)}
		}
	}
	return selected, nil
}

// Skills returns the bundled skills.
func Skills() []Asset { return defaultBundle.All(KindSkill) }

// Agents returns the bundled agents.
func Agents() []Asset { return defaultBundle.All(KindAgent) }

// Skill looks up a bundled skill.
func Skill(name string) (Asset, bool) { return defaultBundle.Get(KindSkill, name) }

// Agent looks up a bundled agent.
func Agent(name string) (Asset, bool) { return defaultBundle.Get(KindAgent, name) }

// SkillNames returns the bundled skill names.
func SkillNames() []string { return defaultBundle.Names(KindSkill) }

// AgentNames returns the bundled agent names.
func AgentNames() []string { return defaultBundle.Names(KindAgent) }
