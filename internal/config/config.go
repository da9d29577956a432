// Package config provides configuration management for shiplog using koanf.
// Values are loaded with priority: environment variables (SHIPLOG_*) >
// project config (.shiplog.yml) > defaults, with command-line flags bound on
// top by the cli package.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPath is the project config file loaded when present.
const DefaultConfigPath = ".shiplog.yml"

// Output formats accepted by the format option.
const (
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatTerminal = "terminal"
)

// Configuration holds every recognized option. Regex-valued fields are kept
// as strings here and compiled exactly once by Compile.
type Configuration struct {
	// Output is the file the changelog is written to. "-" means stdout.
	Output string `koanf:"output"`

	// Format selects the encoding: markdown, yaml, json, or terminal.
	Format string `koanf:"format"`

	// CommitLimit caps commits shown per release; negative disables.
	CommitLimit int `koanf:"commit_limit"`

	// BackfillLimit caps commits for releases without merges or fixes.
	BackfillLimit int `koanf:"backfill_limit"`

	// IgnoreCommitPattern drops commits whose subject matches.
	IgnoreCommitPattern string `koanf:"ignore_commit_pattern"`

	// ReleaseSummary extracts tagged-commit message bodies as summaries.
	ReleaseSummary bool `koanf:"release_summary"`

	// SortCommits is relevance, date, or date-desc.
	SortCommits string `koanf:"sort_commits"`

	// TagPattern restricts which tags are treated as releases.
	TagPattern string `koanf:"tag_pattern"`

	// TagPrefix is prepended to tags in comparison links.
	TagPrefix string `koanf:"tag_prefix"`

	// Unreleased includes commits made since the newest tag.
	Unreleased bool `koanf:"unreleased"`

	// IncludeBranch adds releases reachable only from these branches.
	IncludeBranch []string `koanf:"include_branch"`

	// LatestVersion labels commits ahead of the newest tag with a version
	// that has not been tagged yet.
	LatestVersion string `koanf:"latest_version"`

	// BreakingPattern marks matching commits as breaking changes.
	BreakingPattern string `koanf:"breaking_pattern"`

	// RepoPath points at the repository to read. Empty means the current
	// directory.
	RepoPath string `koanf:"repo_path"`
}

// defaults mirror the conventional changelog settings.
func defaults() map[string]any {
	return map[string]any{
		"output":         "CHANGELOG.md",
		"format":         FormatMarkdown,
		"commit_limit":   3,
		"backfill_limit": 3,
		"sort_commits":   "relevance",
	}
}

// Load reads configuration from the project file and environment. A
// missing default config file is not an error; a missing explicit one is.
func Load(configPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	path := configPath
	if path == "" {
		path = DefaultConfigPath
	}
	if fileExists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	} else if configPath != "" {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}

	if err := k.Load(env.Provider("SHIPLOG_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: SHIPLOG_COMMIT_LIMIT -> commit_limit
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SHIPLOG_"))
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
