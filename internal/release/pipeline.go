// Package release turns a flat, newest-first list of commits into the
// ordered list of changelog releases. The pipeline is a pure in-memory
// transformation: group commits by the tag that closes each release window,
// classify and filter them, sort and truncate per release, then assemble,
// deduplicate, and order the release list.
package release

import (
	"regexp"

	"github.com/ariel-frischer/shiplog/internal/model"
)

// Remote is the capability the pipeline needs from the configured git
// remote. Implementations return empty strings when no link can be built.
type Remote interface {
	CompareLink(from, to string) string
}

// Sort keys accepted by Options.SortCommits.
const (
	SortRelevance = "relevance"
	SortDate      = "date"
	SortDateDesc  = "date-desc"
)

// Options holds the compiled pipeline configuration. Regex options are
// compiled and validated by the config package before a Pipeline is built.
type Options struct {
	// CommitLimit caps the commits shown per release. A negative value
	// disables capping entirely.
	CommitLimit int

	// BackfillLimit replaces CommitLimit for releases that surfaced no
	// merges and no fix references.
	BackfillLimit int

	// IgnoreCommitPattern drops matching commits. Nil when unset.
	IgnoreCommitPattern *regexp.Regexp

	// ReleaseSummary extracts the tagging commit's message body into the
	// release summary.
	ReleaseSummary bool

	// SortCommits selects the secondary sort key: SortRelevance (default),
	// SortDate, or SortDateDesc. Breaking commits always sort first.
	SortCommits string

	// TagPrefix is prepended to tags before compare-link generation.
	TagPrefix string

	// Unreleased retains the untagged bucket as an "Unreleased" entry.
	Unreleased bool

	// HasTagPattern records that the caller filters tags by pattern,
	// which suppresses major-bump detection.
	HasTagPattern bool
}

// Pipeline runs the release-construction stages with a fixed remote and
// option set. It is safe to reuse across branches; nothing is retained
// between runs.
type Pipeline struct {
	remote Remote
	opts   Options
}

// New builds a Pipeline. remote may be nil, in which case no compare links
// are generated.
func New(remote Remote, opts Options) *Pipeline {
	if opts.SortCommits == "" {
		opts.SortCommits = SortRelevance
	}
	return &Pipeline{remote: remote, opts: opts}
}

// Releases runs the single-branch pipeline: group, assemble each bucket,
// then deduplicate and order the result. latestVersion seeds the grouping
// cursor and may be empty.
func (p *Pipeline) Releases(commits []model.Commit, latestVersion string) []model.Release {
	return Order(Dedupe(p.assembleAll(commits, latestVersion)))
}

// ReleasesFromBranches runs the pipeline over each branch's commit list
// independently, concatenates the results in branch order, then
// deduplicates by tag (first occurrence wins) and orders the merged list.
func (p *Pipeline) ReleasesFromBranches(branchCommits [][]model.Commit, latestVersion string) []model.Release {
	var all []model.Release
	for _, commits := range branchCommits {
		all = append(all, p.assembleAll(commits, latestVersion)...)
	}
	return Order(Dedupe(all))
}

// assembleAll groups commits into version buckets and assembles one release
// per bucket. The untagged bucket is dropped unless Options.Unreleased is
// set.
func (p *Pipeline) assembleAll(commits []model.Commit, latestVersion string) []model.Release {
	buckets := groupByRelease(commits, latestVersion)
	keys := buckets.Keys()

	releases := make([]model.Release, 0, len(keys))
	for i, key := range keys {
		if key == unreleasedKey && !p.opts.Unreleased {
			continue
		}
		prevKey := unreleasedKey
		if i+1 < len(keys) {
			prevKey = keys[i+1]
		}
		bucket, _ := buckets.Get(key)
		releases = append(releases, p.assemble(key, prevKey, bucket))
	}
	return releases
}
