package recommend

import (
	"context"
	"log/slog"
	"sync"

	"waypost/internal/observability"
)

// history holds the requesting user's interaction sets. Either set may be
// empty because the store failed; scoring simply loses that signal.
type history struct {
	liked     map[uint]struct{}
	commented map[uint]struct{}
}

// loadHistory reads the liked and commented post-id sets concurrently. Each
// read fails soft: on error the set is empty and the degradation is counted.
func (e *Engine) loadHistory(ctx context.Context, userID uint) history {
	var wg sync.WaitGroup
	hist := history{}

	wg.Add(2)
	go func() {
		defer wg.Done()
		ids, err := e.store.LikedPostIDs(ctx, userID)
		if err != nil {
			observability.StoreDegradations.WithLabelValues("likes").Inc()
			e.logger.WarnContext(ctx, "liked history unavailable", slog.String("error", err.Error()))
			hist.liked = map[uint]struct{}{}
			return
		}
		hist.liked = toSet(ids)
	}()
	go func() {
		defer wg.Done()
		ids, err := e.store.CommentedPostIDs(ctx, userID)
		if err != nil {
			observability.StoreDegradations.WithLabelValues("comments").Inc()
			e.logger.WarnContext(ctx, "commented history unavailable", slog.String("error", err.Error()))
			hist.commented = map[uint]struct{}{}
			return
		}
		hist.commented = toSet(ids)
	}()
	wg.Wait()

	return hist
}

// interactedIDs returns the union of both sets, deduplicated.
func (h history) interactedIDs() []uint {
	ids := make([]uint, 0, len(h.liked)+len(h.commented))
	for id := range h.liked {
		ids = append(ids, id)
	}
	for id := range h.commented {
		if _, ok := h.liked[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func toSet(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
