// Package scoring implements the score aggregation, ranking and history
// replay engine for the ambassador leaderboard. Everything here is a
// deterministic function of (database contents, cutoff); collectors that
// fill the source tables live outside this repository.
package scoring

import (
	"ambassador-board/internal/models"
)

// Rules holds the tunable point values for the scoring engine. The action
// type sets are slices rather than hard-coded strings because the engagement
// tracker has historically written both "reply" and "comment" for the same
// kind of interaction.
type Rules struct {
	// Tweet base points by bucket. A thread-flagged tweet always uses
	// ThreadBase, whatever its media type says.
	ThreadBase float64
	ImageBase  float64
	VideoBase  float64
	TextBase   float64

	// Tweets with at least ViewThreshold views have their base multiplied
	// by ViewBonusFactor.
	ViewThreshold   int
	ViewBonusFactor float64

	// Engagement action types counted as comments / as retweets-or-quotes.
	// Types outside both sets still contribute their points to the
	// engagement score; they just don't show up in either count.
	CommentActions []string
	ShareActions   []string
}

// DefaultRules returns the production scoring rules.
func DefaultRules() Rules {
	return Rules{
		ThreadBase:      10,
		ImageBase:       10,
		VideoBase:       12,
		TextBase:        6,
		ViewThreshold:   1000,
		ViewBonusFactor: 2,
		CommentActions:  []string{models.ActionTypeReply, models.ActionTypeComment},
		ShareActions:    []string{models.ActionTypeRetweetOrQuote},
	}
}

// Tweet buckets. Exactly one applies to any tweet, so the per-bucket counts
// always sum to the ambassador's total tweet count.
type tweetBucket int

const (
	bucketText tweetBucket = iota
	bucketImage
	bucketThread
	bucketVideo
)

// bucketFor classifies a tweet. The thread flag wins over the media type;
// unrecognized media types land in the text bucket (where they score the
// "other" base, see tweetBase).
func bucketFor(mediaType string, isThread bool) tweetBucket {
	if isThread {
		return bucketThread
	}
	switch mediaType {
	case models.MediaTypeImage:
		return bucketImage
	case models.MediaTypeVideo:
		return bucketVideo
	default:
		return bucketText
	}
}

// tweetBase returns the base points for a tweet before the view bonus.
// Unrecognized media types are tolerated and score zero rather than failing
// the whole computation.
func (r Rules) tweetBase(mediaType string, isThread bool) float64 {
	if isThread {
		return r.ThreadBase
	}
	switch mediaType {
	case models.MediaTypeImage:
		return r.ImageBase
	case models.MediaTypeVideo:
		return r.VideoBase
	case models.MediaTypeTextOnly, "":
		return r.TextBase
	default:
		return 0
	}
}

// TweetScore returns the points one tweet is worth under these rules.
func (r Rules) TweetScore(mediaType string, isThread bool, views int) float64 {
	base := r.tweetBase(mediaType, isThread)
	if views >= r.ViewThreshold {
		return base * r.ViewBonusFactor
	}
	return base
}
