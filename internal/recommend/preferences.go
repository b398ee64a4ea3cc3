package recommend

import (
	"context"
	"log/slog"
	"sort"

	"waypost/internal/observability"
)

// preferredTags builds the user's tag preference set from the posts they
// have interacted with. Categories and moods are pooled into one set; a post
// that cannot be loaded is skipped.
func (e *Engine) preferredTags(ctx context.Context, interacted []uint) map[string]struct{} {
	tags := map[string]struct{}{}
	if len(interacted) == 0 {
		return tags
	}

	for _, id := range interacted {
		post, err := e.store.PostByID(ctx, id)
		if err != nil {
			observability.StoreDegradations.WithLabelValues("preferences").Inc()
			e.logger.WarnContext(ctx, "skipping interacted post",
				slog.Uint64("post_id", uint64(id)),
				slog.String("error", err.Error()),
			)
			continue
		}
		for _, c := range post.Categories {
			tags[c] = struct{}{}
		}
		for _, m := range post.Moods {
			tags[m] = struct{}{}
		}
	}

	return tags
}

// topTags returns up to n tags in stable order for debug output.
func topTags(tags map[string]struct{}, n int) []string {
	out := make([]string, 0, len(tags))
	for tag := range tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
