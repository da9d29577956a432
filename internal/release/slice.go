package release

import "github.com/ariel-frischer/shiplog/internal/model"

// sliceCommits truncates a release's sorted commit list to the configured
// display limit. Releases with no merges and no fixes use BackfillLimit
// instead of CommitLimit. Breaking commits establish a floor: they are never
// truncated away, which works because the sorter already placed them first.
func sliceCommits(sorted []model.Commit, opts Options, empty bool) []model.Commit {
	if opts.CommitLimit < 0 {
		return sorted
	}

	limit := opts.CommitLimit
	if empty {
		limit = opts.BackfillLimit
	}

	breaking := 0
	for _, c := range sorted {
		if c.Breaking {
			breaking++
		}
	}

	n := max(breaking, limit)
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
