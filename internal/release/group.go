package release

import (
	"github.com/ariel-frischer/shiplog/internal/model"
	"github.com/shu-go/orderedmap"
)

// unreleasedKey is the bucket key for commits made after the newest tag.
// It doubles as the Release.Tag value for the unreleased entry.
const unreleasedKey = ""

// groupByRelease partitions a newest-first commit list into per-version
// buckets. A running cursor starts at latestVersion (possibly empty); when a
// commit carries a tag, the cursor moves to that tag before the commit is
// filed, so the tagging commit lands in the release it introduces. Bucket
// keys keep first-seen order, which later stages rely on to locate the
// previous release. No commit is dropped or duplicated.
func groupByRelease(commits []model.Commit, latestVersion string) *orderedmap.OrderedMap[string, []model.Commit] {
	buckets := orderedmap.New[string, []model.Commit]()
	current := latestVersion

	for _, c := range commits {
		if c.Tag != "" {
			current = c.Tag
		}
		bucket, _ := buckets.Get(current)
		buckets.Set(current, append(bucket, c))
	}
	return buckets
}
