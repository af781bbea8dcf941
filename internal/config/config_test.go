package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.UnusedTags.Enabled {
		t.Fatal("expected unused_tags enabled by default")
	}
	if cfg.General.MinSeverity != "info" {
		t.Fatalf("expected default min_severity 'info', got %q", cfg.General.MinSeverity)
	}
	if len(cfg.UnusedTags.IgnorePatterns) != 1 || cfg.UnusedTags.IgnorePatterns[0] != "_*" {
		t.Fatalf("unexpected default unused_tags ignore_patterns: %v", cfg.UnusedTags.IgnorePatterns)
	}
	if len(cfg.UndefinedTags.IgnorePatterns) != 1 || cfg.UndefinedTags.IgnorePatterns[0] != "Local:*" {
		t.Fatalf("unexpected default undefined_tags ignore_patterns: %v", cfg.UndefinedTags.IgnorePatterns)
	}
}

func TestParse(t *testing.T) {
	src := `
[general]
min_severity = "warning"

[unused_tags]
enabled = true
ignore_patterns = ["Test_*", "Debug_*"]
ignore_scopes = ["Program:Debug"]
`
	cfg, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if cfg.General.MinSeverity != "warning" {
		t.Fatalf("got min_severity %q, want warning", cfg.General.MinSeverity)
	}
	if !cfg.UnusedTags.Enabled {
		t.Fatal("expected unused_tags enabled")
	}
	if len(cfg.UnusedTags.IgnorePatterns) != 2 {
		t.Fatalf("got %d ignore_patterns, want 2", len(cfg.UnusedTags.IgnorePatterns))
	}
	// Sections left unset must keep their defaults.
	if !cfg.EmptyRoutines.Enabled {
		t.Fatal("expected empty_routines to keep its default enabled=true")
	}
	if len(cfg.UndefinedTags.IgnorePatterns) != 1 || cfg.UndefinedTags.IgnorePatterns[0] != "Local:*" {
		t.Fatalf("expected undefined_tags to keep its default ignore_patterns, got %v", cfg.UndefinedTags.IgnorePatterns)
	}
}

func TestDefaultTOMLParses(t *testing.T) {
	cfg, err := Parse(DefaultTOML())
	if err != nil {
		t.Fatalf("DefaultTOML must parse cleanly: %v", err)
	}
	if !cfg.UnusedTags.Enabled {
		t.Fatal("expected unused_tags enabled after parsing DefaultTOML")
	}
}

func TestParseMalformedTOML(t *testing.T) {
	_, err := Parse("this is not [valid toml")
	if err == nil {
		t.Fatal("expected an error for malformed TOML")
	}
	var cfgErr *Error
	if !asConfigError(err, &cfgErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if cfgErr.Kind != TomlSyntax {
		t.Fatalf("expected TomlSyntax kind, got %v", cfgErr.Kind)
	}
}

func asConfigError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = e
	return true
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile("/nonexistent/plceye.toml")
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	cfgErr, ok := err.(*Error)
	if !ok || cfgErr.Kind != FileRead {
		t.Fatalf("expected FileRead *Error, got %T: %v", err, err)
	}
}
