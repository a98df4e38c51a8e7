package scoring

import (
	"testing"

	"ambassador-board/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestTweetScore(t *testing.T) {
	rules := DefaultRules()

	t.Run("base points by media type", func(t *testing.T) {
		assert.Equal(t, 6.0, rules.TweetScore(models.MediaTypeTextOnly, false, 0))
		assert.Equal(t, 10.0, rules.TweetScore(models.MediaTypeImage, false, 0))
		assert.Equal(t, 12.0, rules.TweetScore(models.MediaTypeVideo, false, 0))
	})

	t.Run("empty media type scores as text", func(t *testing.T) {
		assert.Equal(t, 6.0, rules.TweetScore("", false, 0))
	})

	t.Run("thread flag overrides media type", func(t *testing.T) {
		assert.Equal(t, 10.0, rules.TweetScore(models.MediaTypeVideo, true, 0))
		assert.Equal(t, 10.0, rules.TweetScore(models.MediaTypeTextOnly, true, 500))
		assert.Equal(t, 10.0, rules.TweetScore("", true, 0))
	})

	t.Run("view bonus doubles the base at the threshold", func(t *testing.T) {
		assert.Equal(t, 12.0, rules.TweetScore(models.MediaTypeTextOnly, false, 1000))
		assert.Equal(t, 24.0, rules.TweetScore(models.MediaTypeVideo, false, 1500))
		assert.Equal(t, 20.0, rules.TweetScore(models.MediaTypeImage, true, 999999))
		// One view short of the threshold gets no bonus
		assert.Equal(t, 12.0, rules.TweetScore(models.MediaTypeVideo, false, 999))
	})

	t.Run("unknown media type scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, rules.TweetScore("gif", false, 0))
		// Even with enough views for the bonus
		assert.Equal(t, 0.0, rules.TweetScore("gif", false, 5000))
		// But a thread-flagged unknown type still scores the thread base
		assert.Equal(t, 10.0, rules.TweetScore("gif", true, 0))
	})
}

func TestBucketFor(t *testing.T) {
	cases := []struct {
		mediaType string
		isThread  bool
		want      tweetBucket
	}{
		{models.MediaTypeTextOnly, false, bucketText},
		{models.MediaTypeImage, false, bucketImage},
		{models.MediaTypeVideo, false, bucketVideo},
		{models.MediaTypeVideo, true, bucketThread},
		{"", false, bucketText},
		{"", true, bucketThread},
		// Unknown types land in the text bucket so the four bucket
		// counts always sum to the total tweet count
		{"gif", false, bucketText},
	}

	for _, c := range cases {
		got := bucketFor(c.mediaType, c.isThread)
		if got != c.want {
			t.Errorf("bucketFor(%q, %v) = %v, want %v", c.mediaType, c.isThread, got, c.want)
		}
	}
}
