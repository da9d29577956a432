package release

import (
	"regexp"

	"github.com/ariel-frischer/shiplog/internal/model"
)

// mergeCommitPattern matches the generic message git writes for branch
// merges, from either a local or a remote-tracking branch.
var mergeCommitPattern = regexp.MustCompile(`^Merge (remote-tracking )?branch '.+'`)

// keepCommit decides whether a commit is worth surfacing in the release.
// Checks run in order and the first match wins:
//
//  1. merge-info carriers and fix-reference commits are dropped, their
//     content is already represented in the release's merges/fixes lists
//  2. breaking commits are always kept
//  3. a configured ignore pattern decides matching commits, and no further
//     checks apply
//  4. pure version-bump commits (subject is a valid semver string) are
//     dropped
//  5. generic branch-merge messages are dropped
//  6. commits whose subject repeats an already-recorded merge message are
//     dropped
func keepCommit(c model.Commit, merges []model.Merge, ignore *regexp.Regexp) bool {
	if c.Merge != nil || len(c.Fixes) > 0 {
		return false
	}
	if c.Breaking {
		return true
	}
	if ignore != nil {
		return !ignore.MatchString(c.Subject)
	}
	if _, ok := parseVersion(c.Subject); ok {
		return false
	}
	if mergeCommitPattern.MatchString(c.Subject) {
		return false
	}
	for _, m := range merges {
		if m.Message == c.Subject {
			return false
		}
	}
	return true
}

// filterCommits applies keepCommit over a bucket, preserving order.
func filterCommits(commits []model.Commit, merges []model.Merge, ignore *regexp.Regexp) []model.Commit {
	var kept []model.Commit
	for _, c := range commits {
		if keepCommit(c, merges, ignore) {
			kept = append(kept, c)
		}
	}
	return kept
}
