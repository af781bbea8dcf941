// Package config loads and defaults the rule-detector configuration
// read from a plceye.toml file, grounded on plceye/src/config.rs.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrorKind enumerates the distinct configuration-loading error kinds.
type ErrorKind int

const (
	FileRead ErrorKind = iota
	TomlSyntax
)

func (k ErrorKind) String() string {
	switch k {
	case FileRead:
		return "could not read config file"
	case TomlSyntax:
		return "malformed TOML"
	default:
		return "config error"
	}
}

// Error is one configuration-loading failure.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// RuleConfig is the root of plceye.toml: one section per smell rule,
// plus general reporting settings. Every field defaults sensibly when
// absent from the file, mirroring serde's #[serde(default)] behavior on
// the Rust original — BurntSushi/toml leaves unset fields at the Go
// zero value, so Default builds the real defaults explicitly rather
// than relying on zero values being correct.
type RuleConfig struct {
	General       GeneralConfig       `toml:"general"`
	UnusedTags    UnusedTagsConfig    `toml:"unused_tags"`
	UndefinedTags UndefinedTagsConfig `toml:"undefined_tags"`
	EmptyRoutines EmptyRoutinesConfig `toml:"empty_routines"`
}

// GeneralConfig holds settings that apply across every rule.
type GeneralConfig struct {
	// MinSeverity is the lowest severity worth reporting: "info",
	// "warning", or "error" (also accepts the "warn"/"err" shorthand
	// that report.ParseSeverity understands).
	MinSeverity string `toml:"min_severity"`
}

// UnusedTagsConfig configures the unused-tag rule.
type UnusedTagsConfig struct {
	Enabled        bool     `toml:"enabled"`
	IgnorePatterns []string `toml:"ignore_patterns"`
	IgnoreScopes   []string `toml:"ignore_scopes"`
}

// UndefinedTagsConfig configures the undefined-tag rule.
type UndefinedTagsConfig struct {
	Enabled        bool     `toml:"enabled"`
	IgnorePatterns []string `toml:"ignore_patterns"`
}

// EmptyRoutinesConfig configures the empty-block rule.
type EmptyRoutinesConfig struct {
	Enabled        bool     `toml:"enabled"`
	IgnorePatterns []string `toml:"ignore_patterns"`
}

// Default returns the built-in configuration applied when no
// plceye.toml is present. It matches DefaultTOML's values except that
// its unused_tags ignore_patterns holds only "_*"; DefaultTOML also
// lists "HMI_*".
func Default() RuleConfig {
	return RuleConfig{
		General: GeneralConfig{MinSeverity: "info"},
		UnusedTags: UnusedTagsConfig{
			Enabled:        true,
			IgnorePatterns: []string{"_*"},
			IgnoreScopes:   []string{},
		},
		UndefinedTags: UndefinedTagsConfig{
			Enabled:        true,
			IgnorePatterns: []string{"Local:*"},
		},
		EmptyRoutines: EmptyRoutinesConfig{
			Enabled:        true,
			IgnorePatterns: []string{},
		},
	}
}

// FromFile loads and parses a TOML configuration file from path.
func FromFile(path string) (RuleConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return RuleConfig{}, &Error{Kind: FileRead, Path: path, Err: err}
	}
	return Parse(string(content))
}

// Parse decodes TOML configuration text on top of Default, so that any
// section or field the document omits keeps its default value rather
// than going to the Go zero value.
func Parse(content string) (RuleConfig, error) {
	cfg := Default()
	meta, err := toml.Decode(content, &cfg)
	if err != nil {
		return RuleConfig{}, &Error{Kind: TomlSyntax, Err: err}
	}
	// Unknown keys are ignored, with one warning line on stderr.
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: ignoring unknown configuration key(s): %v\n", undecoded)
	}
	return cfg, nil
}

// DefaultTOML renders the commented default configuration written by
// the "init" subcommand, verbatim to plceye's own default_toml.
func DefaultTOML() string {
	return `# plceye.toml - PLC Code Rule Detector Configuration

[general]
# Minimum severity to report: "info", "warning", "error"
min_severity = "info"

[unused_tags]
# Enable unused tag detection
enabled = true

# Ignore tags matching these patterns (glob-style)
ignore_patterns = [
    "_*",           # Tags starting with underscore (often internal)
    "HMI_*",        # HMI interface tags
]

# Ignore tags in these scopes
ignore_scopes = [
    # "Program:MainProgram",  # Example: ignore MainProgram
]

[undefined_tags]
# Enable undefined tag detection (tags referenced but not declared)
enabled = true

# Ignore undefined tags matching these patterns (useful for I/O)
ignore_patterns = [
    "Local:*",      # Module I/O references
]

[empty_routines]
# Enable empty routine detection
enabled = true

# Ignore routines matching these patterns
ignore_patterns = [
    # "Unused_*",    # Example: ignore placeholder routines
]
`
}
