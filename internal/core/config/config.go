// Package config handles configuration loading and validation for aiandi.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Inbox    InboxConfig    `yaml:"inbox"`
	GTD      GTDConfig      `yaml:"gtd"`
	PIM      PIMConfig      `yaml:"pim"`
	Doctor   DoctorConfig   `yaml:"doctor"`
	OpenCode OpenCodeConfig `yaml:"opencode"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// InboxConfig controls GTD capture into TaskWarrior.
type InboxConfig struct {
	Command     string   `yaml:"command"`      // TaskWarrior binary
	Tag         string   `yaml:"tag"`          // tag marking inbox items, without "+"
	DefaultTags []string `yaml:"default_tags"` // extra tags added to every capture
}

// GTDConfig tunes the GTD tools built on the same TaskWarrior as the inbox.
type GTDConfig struct {
	SomedayTag string `yaml:"someday_tag"` // tag marking someday/maybe items, without "+"
	StaleDays  int    `yaml:"stale_days"`  // projects untouched this long are stalled
	ListLimit  int    `yaml:"list_limit"`  // default cap for list_tasks
}

// PIMConfig configures the calendar, contacts and email wrappers.
type PIMConfig struct {
	Khal        string `yaml:"khal"`
	Khard       string `yaml:"khard"`
	Notmuch     string `yaml:"notmuch"`
	Himalaya    string `yaml:"himalaya"`
	Calendar    string `yaml:"calendar"`     // calendar new events are written to
	ContactsDir string `yaml:"contacts_dir"` // vdirsyncer address book new contacts are written to
	SearchLimit int    `yaml:"search_limit"`
	DefaultDays int    `yaml:"default_days"`
}

// DoctorConfig lists the external tools the doctor checks.
type DoctorConfig struct {
	RequiredTools []string `yaml:"required_tools"`
	OptionalTools []string `yaml:"optional_tools"`
	Workers       int      `yaml:"workers"` // concurrent version probes
}

// OpenCodeConfig locates the user's OpenCode installation.
type OpenCodeConfig struct {
	Dir      string `yaml:"dir"`
	SkillDir string `yaml:"skill_dir"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "aiandi", "config.yaml")
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, "aiandi")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	opencode := filepath.Join(xdg.ConfigHome, "opencode")
	return Config{
		Inbox: InboxConfig{
			Command:     "task",
			Tag:         "in",
			DefaultTags: []string{},
		},
		GTD: GTDConfig{
			SomedayTag: "sdm",
			StaleDays:  7,
			ListLimit:  50,
		},
		PIM: PIMConfig{
			Khal:        "khal",
			Khard:       "khard",
			Notmuch:     "notmuch",
			Himalaya:    "~/.local/bin/himalaya",
			Calendar:    "personal",
			ContactsDir: "~/.local/share/vdirsyncer/contacts/default",
			SearchLimit: 20,
			DefaultDays: 7,
		},
		Doctor: DoctorConfig{
			RequiredTools: []string{"opencode", "task"},
			OptionalTools: []string{"khal", "khard", "notmuch", "himalaya"},
			Workers:       4,
		},
		OpenCode: OpenCodeConfig{
			Dir:      opencode,
			SkillDir: filepath.Join(opencode, "skill"),
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	setString := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	setInt := func(dst *int, def int) {
		if *dst == 0 {
			*dst = def
		}
	}

	setString(&c.Inbox.Command, defaults.Inbox.Command)
	setString(&c.Inbox.Tag, defaults.Inbox.Tag)
	c.Inbox.Tag = strings.TrimPrefix(c.Inbox.Tag, "+")

	setString(&c.GTD.SomedayTag, defaults.GTD.SomedayTag)
	c.GTD.SomedayTag = strings.TrimPrefix(c.GTD.SomedayTag, "+")
	setInt(&c.GTD.StaleDays, defaults.GTD.StaleDays)
	setInt(&c.GTD.ListLimit, defaults.GTD.ListLimit)

	setString(&c.PIM.Khal, defaults.PIM.Khal)
	setString(&c.PIM.Khard, defaults.PIM.Khard)
	setString(&c.PIM.Notmuch, defaults.PIM.Notmuch)
	setString(&c.PIM.Himalaya, defaults.PIM.Himalaya)
	setString(&c.PIM.Calendar, defaults.PIM.Calendar)
	setString(&c.PIM.ContactsDir, defaults.PIM.ContactsDir)
	setInt(&c.PIM.SearchLimit, defaults.PIM.SearchLimit)
	setInt(&c.PIM.DefaultDays, defaults.PIM.DefaultDays)

	if c.Doctor.RequiredTools == nil {
		c.Doctor.RequiredTools = defaults.Doctor.RequiredTools
	}
	if c.Doctor.OptionalTools == nil {
		c.Doctor.OptionalTools = defaults.Doctor.OptionalTools
	}
	setInt(&c.Doctor.Workers, defaults.Doctor.Workers)

	setString(&c.OpenCode.Dir, defaults.OpenCode.Dir)
	if strings.TrimSpace(c.OpenCode.SkillDir) == "" {
		c.OpenCode.SkillDir = filepath.Join(c.OpenCode.Dir, "skill")
	}
}

func (c *Config) expandPaths() {
	c.PIM.Himalaya = ExpandHome(c.PIM.Himalaya)
	c.PIM.ContactsDir = ExpandHome(c.PIM.ContactsDir)
	c.OpenCode.Dir = ExpandHome(c.OpenCode.Dir)
	c.OpenCode.SkillDir = ExpandHome(c.OpenCode.SkillDir)
	c.DataDir = ExpandHome(c.DataDir)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if strings.ContainsAny(c.Inbox.Tag, " \t\n") {
		return fmt.Errorf("inbox.tag %q cannot contain whitespace", c.Inbox.Tag)
	}
	for i, tag := range c.Inbox.DefaultTags {
		if strings.TrimSpace(strings.TrimPrefix(tag, "+")) == "" {
			return fmt.Errorf("inbox.default_tags[%d] cannot be empty", i)
		}
	}

	if strings.ContainsAny(c.GTD.SomedayTag, " \t\n") {
		return fmt.Errorf("gtd.someday_tag %q cannot contain whitespace", c.GTD.SomedayTag)
	}
	if c.GTD.SomedayTag == c.Inbox.Tag {
		return fmt.Errorf("gtd.someday_tag cannot equal inbox.tag")
	}
	if c.GTD.StaleDays < 1 {
		return fmt.Errorf("gtd.stale_days must be at least 1")
	}
	if c.GTD.ListLimit < 1 {
		return fmt.Errorf("gtd.list_limit must be at least 1")
	}

	if c.PIM.SearchLimit < 1 {
		return fmt.Errorf("pim.search_limit must be at least 1")
	}
	if c.PIM.DefaultDays < 1 {
		return fmt.Errorf("pim.default_days must be at least 1")
	}

	if c.Doctor.Workers < 1 {
		return fmt.Errorf("doctor.workers must be at least 1")
	}
	seen := make(map[string]bool)
	for _, tool := range append(append([]string{}, c.Doctor.RequiredTools...), c.Doctor.OptionalTools...) {
		if strings.TrimSpace(tool) == "" {
			return fmt.Errorf("doctor tools cannot contain empty names")
		}
		if seen[tool] {
			return fmt.Errorf("doctor tool %q is listed more than once", tool)
		}
		seen[tool] = true
	}

	return nil
}
