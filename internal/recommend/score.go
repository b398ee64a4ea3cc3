package recommend

import (
	"math"
	"sort"
)

// Score weights, highest priority first: proximity, prior comment, prior
// like, tag overlap, recency.
const (
	locationWeight     = 4.0
	commentedBonus     = 30.0
	likedBonus         = 20.0
	categoryMatchBonus = 5.0
	moodMatchBonus     = 3.0
)

// score computes the relevance score of one candidate.
func (c *Candidate) score(hist history, tags map[string]struct{}, nowHoursSince func(c *Candidate) float64) float64 {
	s := math.Max(0, 10-c.DistanceKm) * locationWeight

	if _, ok := hist.commented[c.ID]; ok {
		s += commentedBonus
	}
	if _, ok := hist.liked[c.ID]; ok {
		s += likedBonus
	}

	for _, cat := range c.Categories {
		if _, ok := tags[cat]; ok {
			s += categoryMatchBonus
		}
	}
	for _, mood := range c.Moods {
		if _, ok := tags[mood]; ok {
			s += moodMatchBonus
		}
	}

	s += math.Max(0, 10-nowHoursSince(c)/24)

	return s
}

// scoreAll scores every candidate in place and sorts them by score
// descending.
func (e *Engine) scoreAll(candidates []Candidate, hist history, tags map[string]struct{}) {
	now := e.now()
	hoursSince := func(c *Candidate) float64 {
		return now.Sub(c.CreatedAt).Hours()
	}
	for i := range candidates {
		candidates[i].Score = candidates[i].score(hist, tags, hoursSince)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// scoreBand buckets a score into its 10-point band.
func scoreBand(score float64) int {
	return int(math.Floor(score/10)) * 10
}

// bandShuffle groups the score-sorted candidates into 10-point bands,
// shuffles each band, and concatenates bands from highest to lowest. Posts
// with similar relevance rotate between requests instead of freezing into
// one order.
func (e *Engine) bandShuffle(candidates []Candidate) []Candidate {
	bands := map[int][]Candidate{}
	order := []int{}
	for _, c := range candidates {
		band := scoreBand(c.Score)
		if _, seen := bands[band]; !seen {
			order = append(order, band)
		}
		bands[band] = append(bands[band], c)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(order)))

	out := make([]Candidate, 0, len(candidates))
	for _, band := range order {
		group := bands[band]
		e.shuffle(group)
		out = append(out, group...)
	}
	return out
}
