package release

import (
	"slices"

	"github.com/ariel-frischer/shiplog/internal/model"
)

// Dedupe removes releases that repeat an already-seen tag, keeping the
// first occurrence in input order. Branch merges produce the duplicates:
// the same tag is reachable from more than one branch head.
func Dedupe(releases []model.Release) []model.Release {
	seen := make(map[string]bool, len(releases))
	deduped := make([]model.Release, 0, len(releases))
	for _, r := range releases {
		if seen[r.Tag] {
			continue
		}
		seen[r.Tag] = true
		deduped = append(deduped, r)
	}
	return deduped
}

// Order sorts releases newest first by inferred semantic version. A release
// without a tag deliberately sorts before every tagged one, which floats the
// unreleased bucket to the top. Tags that still aren't valid semver after
// inference fall back to plain string comparison, descending.
func Order(releases []model.Release) []model.Release {
	sorted := slices.Clone(releases)
	slices.SortStableFunc(sorted, compareReleases)
	return sorted
}

// compareReleases is the total order over releases described above.
func compareReleases(a, b model.Release) int {
	av := InferVersion(a.Tag)
	bv := InferVersion(b.Tag)

	if av != "" && bv != "" {
		pa, aok := parseVersion(av)
		pb, bok := parseVersion(bv)
		if aok && bok {
			return pb.Compare(pa)
		}
		if av == bv {
			return 0
		}
		if av < bv {
			return 1
		}
		return -1
	}
	if av != "" {
		return 1
	}
	if bv != "" {
		return -1
	}
	return 0
}
