package release

import (
	"testing"
	"time"

	"github.com/ariel-frischer/shiplog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commit(subject, tag string) model.Commit {
	return model.Commit{Hash: subject, Subject: subject, Tag: tag, Date: time.Now()}
}

func TestGroupByRelease(t *testing.T) {
	tests := map[string]struct {
		commits       []model.Commit
		latestVersion string
		wantKeys      []string
		wantSizes     map[string]int
	}{
		"tagging commit files under its own tag": {
			commits: []model.Commit{
				commit("release two", "v2.0.0"),
				commit("work", ""),
				commit("release one", "v1.0.0"),
			},
			wantKeys:  []string{"v2.0.0", "v1.0.0"},
			wantSizes: map[string]int{"v2.0.0": 2, "v1.0.0": 1},
		},
		"commits before first tag go to unreleased": {
			commits: []model.Commit{
				commit("pending", ""),
				commit("release one", "v1.0.0"),
			},
			wantKeys:  []string{"", "v1.0.0"},
			wantSizes: map[string]int{"": 1, "v1.0.0": 1},
		},
		"latest version seeds the cursor": {
			commits: []model.Commit{
				commit("pending", ""),
				commit("release one", "v1.0.0"),
			},
			latestVersion: "v1.1.0",
			wantKeys:      []string{"v1.1.0", "v1.0.0"},
			wantSizes:     map[string]int{"v1.1.0": 1, "v1.0.0": 1},
		},
		"commits older than the oldest tag stay in its bucket": {
			commits: []model.Commit{
				commit("release one", "v1.0.0"),
				commit("early work", ""),
				commit("initial commit", ""),
			},
			wantKeys:  []string{"v1.0.0"},
			wantSizes: map[string]int{"v1.0.0": 3},
		},
		"no commits": {
			commits:  nil,
			wantKeys: []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			buckets := groupByRelease(tt.commits, tt.latestVersion)

			assert.ElementsMatch(t, tt.wantKeys, buckets.Keys())
			if len(tt.wantKeys) > 0 {
				assert.Equal(t, tt.wantKeys, buckets.Keys(), "keys must keep first-seen order")
			}

			total := 0
			for key, size := range tt.wantSizes {
				bucket, ok := buckets.Get(key)
				require.True(t, ok, "bucket %q missing", key)
				assert.Len(t, bucket, size)
				total += len(bucket)
			}
			assert.Equal(t, len(tt.commits), total, "no commit may be dropped or duplicated")
		})
	}
}

func TestGroupByReleasePreservesOrderWithinBucket(t *testing.T) {
	commits := []model.Commit{
		commit("third", "v1.0.0"),
		commit("second", ""),
		commit("first", ""),
	}

	buckets := groupByRelease(commits, "")
	bucket, ok := buckets.Get("v1.0.0")
	require.True(t, ok)
	require.Len(t, bucket, 3)
	assert.Equal(t, "third", bucket[0].Subject)
	assert.Equal(t, "second", bucket[1].Subject)
	assert.Equal(t, "first", bucket[2].Subject)
}
