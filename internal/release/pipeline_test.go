package release

import (
	"fmt"
	"testing"
	"time"

	"github.com/ariel-frischer/shiplog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct{}

func (fakeRemote) CompareLink(from, to string) string {
	return fmt.Sprintf("compare/%s...%s", from, to)
}

func defaultOptions() Options {
	return Options{CommitLimit: 3, BackfillLimit: 3}
}

func TestReleasesConcreteScenario(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	commits := []model.Commit{
		{Hash: "a1", Subject: "[Feature] add X", Tag: "v2.0.0", Date: base},
		{Hash: "b2", Subject: "[Bug] fix Y", Date: base.Add(-time.Hour)},
		{Hash: "c3", Subject: "init", Tag: "v1.0.0", Date: base.Add(-48 * time.Hour)},
	}

	pipe := New(nil, defaultOptions())
	releases := pipe.Releases(commits, "")

	require.Len(t, releases, 2)
	assert.Equal(t, "v2.0.0", releases[0].Tag)
	assert.Equal(t, "v1.0.0", releases[1].Tag)

	v2 := releases[0]
	require.Len(t, v2.FeatureCommits, 1)
	assert.Equal(t, "add X", v2.FeatureCommits[0].Subject)
	require.Len(t, v2.BugFixCommits, 1)
	assert.Equal(t, "fix Y", v2.BugFixCommits[0].Subject)
	assert.Len(t, v2.AllCommits, 2)

	v1 := releases[1]
	require.Len(t, v1.OtherCommits, 1)
	assert.Equal(t, "init", v1.OtherCommits[0].Subject)
	assert.Equal(t, "2026-05-08", v1.ISODate)
}

func TestReleasesPartitionCompleteness(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	commits := []model.Commit{
		{Hash: "a", Subject: "[Feature] f", Tag: "v1.0.0", Date: base},
		{Hash: "b", Subject: "[Bug] b", Date: base},
		{Hash: "c", Subject: "[Deprecate] d", Date: base},
		{Hash: "d", Subject: "plain", Date: base},
	}

	pipe := New(nil, Options{CommitLimit: -1})
	releases := pipe.Releases(commits, "")

	require.Len(t, releases, 1)
	r := releases[0]
	parts := len(r.FeatureCommits) + len(r.BugFixCommits) + len(r.ImprovementCommits) + len(r.OtherCommits)
	assert.Equal(t, len(r.AllCommits), parts)
	assert.Len(t, r.AllCommits, 4)
}

func TestReleasesUnreleasedBucket(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	commits := []model.Commit{
		{Hash: "p", Subject: "pending work", Date: base},
		{Hash: "t", Subject: "cut release", Tag: "v1.0.0", Date: base.Add(-time.Hour)},
	}

	t.Run("excluded by default", func(t *testing.T) {
		pipe := New(nil, defaultOptions())
		releases := pipe.Releases(commits, "")

		require.Len(t, releases, 1)
		assert.Equal(t, "v1.0.0", releases[0].Tag)
	})

	t.Run("included and pinned first when enabled", func(t *testing.T) {
		opts := defaultOptions()
		opts.Unreleased = true
		pipe := New(nil, opts)
		releases := pipe.Releases(commits, "")

		require.Len(t, releases, 2)
		assert.True(t, releases[0].IsUnreleased())
		assert.Equal(t, "Unreleased", releases[0].Title)
		assert.Equal(t, "v1.0.0", releases[1].Tag)
	})
}

func TestReleasesCompareLinks(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	commits := []model.Commit{
		{Hash: "p", Subject: "pending", Date: base},
		{Hash: "a", Subject: "two", Tag: "v2.0.0", Date: base.Add(-time.Hour)},
		{Hash: "b", Subject: "one", Tag: "v1.0.0", Date: base.Add(-2 * time.Hour)},
	}

	opts := defaultOptions()
	opts.Unreleased = true
	opts.TagPrefix = "t-"
	pipe := New(fakeRemote{}, opts)
	releases := pipe.Releases(commits, "")

	require.Len(t, releases, 3)
	assert.Equal(t, "compare/t-v2.0.0...HEAD", releases[0].CompareHref, "unreleased compares against HEAD")
	assert.Equal(t, "compare/t-v1.0.0...t-v2.0.0", releases[1].CompareHref)
	assert.Empty(t, releases[2].CompareHref, "oldest release has nothing to compare against")
}

func TestReleasesMajorFlag(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	commits := []model.Commit{
		{Hash: "a", Subject: "two", Tag: "v2.0.0", Date: base},
		{Hash: "b", Subject: "minor", Tag: "v1.1.0", Date: base.Add(-time.Hour)},
		{Hash: "c", Subject: "one", Tag: "v1.0.0", Date: base.Add(-2 * time.Hour)},
	}

	t.Run("set on major bumps", func(t *testing.T) {
		pipe := New(nil, defaultOptions())
		releases := pipe.Releases(commits, "")

		require.Len(t, releases, 3)
		assert.True(t, releases[0].Major)
		assert.False(t, releases[1].Major)
		assert.False(t, releases[2].Major)
	})

	t.Run("suppressed when a tag pattern is configured", func(t *testing.T) {
		opts := defaultOptions()
		opts.HasTagPattern = true
		pipe := New(nil, opts)
		releases := pipe.Releases(commits, "")

		for _, r := range releases {
			assert.False(t, r.Major)
		}
	})
}

func TestReleasesSummaryExtraction(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	commits := []model.Commit{
		{
			Hash:    "a",
			Subject: "v1.0.0",
			Message: "v1.0.0\n\nFirst stable release.\nShips the core pipeline.",
			Tag:     "v1.0.0",
			Date:    base,
		},
	}

	t.Run("disabled by default", func(t *testing.T) {
		pipe := New(nil, defaultOptions())
		releases := pipe.Releases(commits, "")

		require.Len(t, releases, 1)
		assert.Empty(t, releases[0].Summary)
	})

	t.Run("extracts the message body when enabled", func(t *testing.T) {
		opts := defaultOptions()
		opts.ReleaseSummary = true
		pipe := New(nil, opts)
		releases := pipe.Releases(commits, "")

		require.Len(t, releases, 1)
		assert.Equal(t, "First stable release.\nShips the core pipeline.", releases[0].Summary)
	})
}

func TestReleasesMergesAndFixesCollectedBeforeFiltering(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	commits := []model.Commit{
		{Hash: "m", Subject: "Merge pull request #12 from fork/x", Merge: &model.Merge{ID: "12", Message: "add x"}, Tag: "v1.0.0", Date: base},
		{Hash: "f", Subject: "fix crash", Fixes: []model.Fix{{ID: "34"}}, Date: base},
		{Hash: "p", Subject: "plain", Date: base},
	}

	pipe := New(nil, defaultOptions())
	releases := pipe.Releases(commits, "")

	require.Len(t, releases, 1)
	r := releases[0]

	require.Len(t, r.Merges, 1)
	assert.Equal(t, "12", r.Merges[0].ID)
	require.Len(t, r.Fixes, 1)
	assert.Equal(t, "34", r.Fixes[0].Fixes[0].ID)

	// The carriers themselves are filtered out of the commit lists.
	require.Len(t, r.AllCommits, 1)
	assert.Equal(t, "plain", r.AllCommits[0].Subject)
}

func TestReleasesSyntheticRepresentative(t *testing.T) {
	// latestVersion labels untagged commits, so the bucket has no tagging
	// commit and gets a synthetic one dated now.
	commits := []model.Commit{
		{Hash: "a", Subject: "pending", Date: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)},
	}

	pipe := New(nil, defaultOptions())
	releases := pipe.Releases(commits, "v3.0.0")

	require.Len(t, releases, 1)
	assert.Equal(t, "v3.0.0", releases[0].Tag)
	assert.WithinDuration(t, time.Now(), releases[0].Date, time.Minute)
}

func TestReleasesFromBranches(t *testing.T) {
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	main := []model.Commit{
		{Hash: "a", Subject: "two", Tag: "v2.0.0", Date: base},
		{Hash: "b", Subject: "one", Tag: "v1.0.0", Date: base.Add(-2 * time.Hour)},
	}
	maintenance := []model.Commit{
		{Hash: "c", Subject: "patch", Tag: "v1.5.0", Date: base.Add(-time.Hour)},
		{Hash: "b", Subject: "one", Tag: "v1.0.0", Date: base.Add(-2 * time.Hour)},
	}

	pipe := New(nil, defaultOptions())
	releases := pipe.ReleasesFromBranches([][]model.Commit{main, maintenance}, "")

	require.Len(t, releases, 3)
	assert.Equal(t, []string{"v2.0.0", "v1.5.0", "v1.0.0"}, tagsOf(releases))
}
