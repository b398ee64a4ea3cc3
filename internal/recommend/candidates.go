package recommend

import (
	"context"
	"log/slog"
	"sort"

	"waypost/internal/observability"
)

// fetchCandidates scans every active post and keeps those that are not
// excluded, carry both coordinates, and lie within radiusKm of the origin.
// Survivors are sorted newest first and truncated to the fetch size so the
// scorer works over a bounded recent set.
func (e *Engine) fetchCandidates(ctx context.Context, origin Coordinates, radiusKm float64, exclude map[uint]struct{}) []Candidate {
	posts, err := e.store.ActivePosts(ctx)
	if err != nil {
		observability.StoreDegradations.WithLabelValues("posts").Inc()
		e.logger.ErrorContext(ctx, "active post scan failed", slog.String("error", err.Error()))
		return nil
	}

	candidates := make([]Candidate, 0, len(posts))
	for _, post := range posts {
		if _, skip := exclude[post.ID]; skip {
			continue
		}
		if !post.HasCoordinates() {
			continue
		}
		d := DistanceKm(origin.Lat, origin.Lng, *post.Latitude, *post.Longitude)
		if d > radiusKm {
			continue
		}
		candidates = append(candidates, Candidate{Post: post, DistanceKm: d})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	if len(candidates) > candidateFetchSize {
		candidates = candidates[:candidateFetchSize]
	}

	return candidates
}

// fetchWithWidening fetches at the start radius and, when the result is thin,
// doubles the radius exactly once. A single widening step keeps feed latency
// bounded and matches how far "nearby" is allowed to stretch; results beyond
// twice the start radius are not worth a second scan.
func (e *Engine) fetchWithWidening(ctx context.Context, origin Coordinates, exclude map[uint]struct{}) ([]Candidate, float64, bool) {
	radius := float64(startRadiusKm)
	candidates := e.fetchCandidates(ctx, origin, radius, exclude)

	if len(candidates) < minCandidates && radius < maxRadiusKm {
		observability.FeedRadiusWidenings.Inc()
		radius *= 2
		candidates = e.fetchCandidates(ctx, origin, radius, exclude)
		return candidates, radius, true
	}

	return candidates, radius, false
}
