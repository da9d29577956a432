package release

import (
	"cmp"
	"slices"

	"github.com/ariel-frischer/shiplog/internal/model"
)

// sortCommits orders a release's filtered commits: breaking changes first,
// then by the configured secondary key. The sort is stable, so exact ties
// keep their grouping (chronological) order.
func sortCommits(commits []model.Commit, key string) []model.Commit {
	sorted := slices.Clone(commits)
	slices.SortStableFunc(sorted, commitComparer(key))
	return sorted
}

// commitComparer returns the comparator for the given secondary key:
// SortDate ascending, SortDateDesc descending, anything else relevance
// (line-change volume, descending).
func commitComparer(key string) func(a, b model.Commit) int {
	return func(a, b model.Commit) int {
		if a.Breaking != b.Breaking {
			if a.Breaking {
				return -1
			}
			return 1
		}
		switch key {
		case SortDate:
			return a.Date.Compare(b.Date)
		case SortDateDesc:
			return b.Date.Compare(a.Date)
		default:
			return cmp.Compare(b.Delta(), a.Delta())
		}
	}
}
