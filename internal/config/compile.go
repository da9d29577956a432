package config

import (
	"fmt"
	"regexp"

	"github.com/ariel-frischer/shiplog/internal/errors"
	"github.com/ariel-frischer/shiplog/internal/release"
)

// Compiled is the validated form of a Configuration: every regex option
// compiled exactly once, ready to hand to the collectors and the pipeline.
type Compiled struct {
	Pipeline        release.Options
	TagPattern      *regexp.Regexp
	BreakingPattern *regexp.Regexp
}

// Compile validates option values and compiles the regex options. Invalid
// values fail fast with a Configuration error before any git work starts.
func (c *Configuration) Compile() (*Compiled, error) {
	switch c.SortCommits {
	case "", release.SortRelevance, release.SortDate, release.SortDateDesc:
	default:
		return nil, errors.NewConfigError(
			fmt.Sprintf("invalid sort_commits value %q", c.SortCommits),
			"use one of: relevance, date, date-desc",
		)
	}

	switch c.Format {
	case "", FormatMarkdown, FormatYAML, FormatJSON, FormatTerminal:
	default:
		return nil, errors.NewConfigError(
			fmt.Sprintf("invalid format value %q", c.Format),
			"use one of: markdown, yaml, json, terminal",
		)
	}

	ignore, err := compilePattern("ignore_commit_pattern", c.IgnoreCommitPattern)
	if err != nil {
		return nil, err
	}
	tagPattern, err := compilePattern("tag_pattern", c.TagPattern)
	if err != nil {
		return nil, err
	}
	breaking, err := compilePattern("breaking_pattern", c.BreakingPattern)
	if err != nil {
		return nil, err
	}

	return &Compiled{
		Pipeline: release.Options{
			CommitLimit:         c.CommitLimit,
			BackfillLimit:       c.BackfillLimit,
			IgnoreCommitPattern: ignore,
			ReleaseSummary:      c.ReleaseSummary,
			SortCommits:         c.SortCommits,
			TagPrefix:           c.TagPrefix,
			Unreleased:          c.Unreleased,
			HasTagPattern:       tagPattern != nil,
		},
		TagPattern:      tagPattern,
		BreakingPattern: breaking,
	}, nil
}

// compilePattern compiles an optional regex option, reporting failures as
// configuration errors rather than generic runtime faults.
func compilePattern(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.NewConfigError(
			fmt.Sprintf("invalid %s: %v", name, err),
			fmt.Sprintf("fix the %s regular expression in .shiplog.yml or the matching flag", name),
		)
	}
	return re, nil
}
