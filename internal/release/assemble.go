package release

import (
	"strings"
	"time"

	"github.com/ariel-frischer/shiplog/internal/model"
)

// compareHead is the comparison target for the unreleased bucket.
const compareHead = "HEAD"

// assemble builds the release record for one version bucket. prevKey is the
// next bucket key in first-seen order, i.e. the release immediately older
// than this one, or empty when this is the oldest known release.
func (p *Pipeline) assemble(key, prevKey string, commits []model.Commit) model.Release {
	rep := representative(key, commits)

	merges := collectMerges(commits)
	fixes := collectFixes(commits)
	empty := len(merges) == 0 && len(fixes) == 0

	kept := filterCommits(commits, merges, p.opts.IgnoreCommitPattern)
	sorted := sortCommits(kept, p.opts.SortCommits)
	sliced := sliceCommits(sorted, p.opts, empty)
	cls := classifyAll(sliced)

	return model.Release{
		Tag:                key,
		Title:              releaseTitle(key),
		Date:               rep.Date,
		ISODate:            rep.Date.Format("2006-01-02"),
		NiceDate:           rep.Date.Format("2 January 2006"),
		FeatureCommits:     cls.Features,
		BugFixCommits:      cls.BugFixes,
		ImprovementCommits: cls.Improvements,
		OtherCommits:       cls.Other,
		AllCommits:         cls.All,
		Merges:             merges,
		Fixes:              fixes,
		Summary:            p.summary(rep),
		Major:              p.major(key, prevKey),
		CompareHref:        p.compareLink(key, prevKey),
	}
}

// representative returns the bucket's tagging commit. When the bucket has
// none (unreleased, or a latest-version label with no tag yet), a synthetic
// record dated now stands in so the release still gets a date.
func representative(key string, commits []model.Commit) model.Commit {
	for _, c := range commits {
		if c.Tag != "" && c.Tag == key {
			return c
		}
	}
	return model.Commit{Tag: key, Date: time.Now()}
}

func releaseTitle(key string) string {
	if key == unreleasedKey {
		return "Unreleased"
	}
	return key
}

// collectMerges gathers structured merge info from the bucket before the
// filter removes the carrying commits.
func collectMerges(commits []model.Commit) []model.Merge {
	var merges []model.Merge
	for _, c := range commits {
		if c.Merge != nil {
			merges = append(merges, *c.Merge)
		}
	}
	return merges
}

// collectFixes gathers issue references with their originating commits
// before the filter removes them.
func collectFixes(commits []model.Commit) []model.FixEntry {
	var fixes []model.FixEntry
	for _, c := range commits {
		if len(c.Fixes) > 0 {
			fixes = append(fixes, model.FixEntry{Fixes: c.Fixes, Commit: c})
		}
	}
	return fixes
}

// summary extracts the portion of the tagging commit's message after the
// first blank line, when summary extraction is enabled.
func (p *Pipeline) summary(rep model.Commit) string {
	if !p.opts.ReleaseSummary {
		return ""
	}
	_, body, found := strings.Cut(rep.Message, "\n\n")
	if !found {
		return ""
	}
	return strings.TrimSpace(body)
}

// major reports a major-version bump relative to the previous release.
// Suppressed entirely when a tag pattern is configured.
func (p *Pipeline) major(key, prevKey string) bool {
	if p.opts.HasTagPattern || key == unreleasedKey || prevKey == unreleasedKey {
		return false
	}
	return majorBump(key, prevKey)
}

// compareLink builds the remote comparison link from the previous tag to
// this release, using HEAD as the target for the unreleased bucket. The
// oldest known release has nothing to compare against and gets no link.
func (p *Pipeline) compareLink(key, prevKey string) string {
	if p.remote == nil || prevKey == unreleasedKey {
		return ""
	}
	to := compareHead
	if key != unreleasedKey {
		to = p.opts.TagPrefix + key
	}
	return p.remote.CompareLink(p.opts.TagPrefix+prevKey, to)
}
