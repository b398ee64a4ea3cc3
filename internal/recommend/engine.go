// Package recommend implements the location-aware feed recommendation engine.
// It scores nearby active posts against the requesting user's interaction
// history and returns a ranked, lightly randomized page. The engine never
// returns an error to its caller: every failure degrades to a smaller or
// empty, but always well-formed, result.
package recommend

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"waypost/internal/models"
	"waypost/internal/observability"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// DefaultPageSize is the page length used when a request does not ask
	// for one.
	DefaultPageSize = 10

	startRadiusKm      = 5
	maxRadiusKm        = 50
	minCandidates      = 10
	candidateFetchSize = 50
)

// Store is the data access surface the engine needs. The repository layer
// provides the production implementation.
type Store interface {
	ActivePosts(ctx context.Context) ([]models.Post, error)
	PostByID(ctx context.Context, id uint) (*models.Post, error)
	LikedPostIDs(ctx context.Context, userID uint) ([]uint, error)
	CommentedPostIDs(ctx context.Context, userID uint) ([]uint, error)
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Request describes one feed page request. Exclude carries the ids the
// client has already seen; the caller owns that set and grows it between
// pages, which is what makes successive pages disjoint.
type Request struct {
	UserID   uint
	Origin   Coordinates
	Exclude  []uint
	Cursor   string
	PageSize int
}

// Candidate is a post annotated with its distance from the request origin
// and its relevance score.
type Candidate struct {
	models.Post
	DistanceKm float64 `json:"distance_km"`
	Score      float64 `json:"score"`
}

// Debug surfaces engine internals for troubleshooting feed quality.
type Debug struct {
	CandidatesFound int      `json:"candidates_found"`
	LikedCount      int      `json:"liked_count"`
	CommentedCount  int      `json:"commented_count"`
	PreferredTags   []string `json:"preferred_tags"`
	RadiusKm        float64  `json:"radius_km"`
	Widened         bool     `json:"widened"`
}

// Result is one feed page. Cursor is an opaque continuation token; an empty
// Posts slice with HasMore false is the terminal page.
type Result struct {
	Posts   []Candidate `json:"posts"`
	Cursor  string      `json:"cursor"`
	HasMore bool        `json:"has_more"`
	Debug   Debug       `json:"debug"`
}

// Engine computes recommendation pages. Safe for concurrent use.
type Engine struct {
	store  Store
	logger *slog.Logger

	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates an engine backed by the given store.
func NewEngine(store Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:  store,
		logger: logger,
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Recommend builds one feed page for the user at the given origin. It never
// fails: store errors shrink the inputs and a panic anywhere in the pipeline
// yields an empty page.
func (e *Engine) Recommend(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "recommendation engine panic", slog.Any("panic", r))
			observability.FeedRequests.WithLabelValues("degraded").Inc()
			res = Result{Posts: []Candidate{}}
		}
	}()

	ctx, span := observability.StartSpan(ctx, "recommend.Recommend")
	defer span.End()

	timer := prometheus.NewTimer(observability.FeedLatency)
	defer timer.ObserveDuration()

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	hist := e.loadHistory(ctx, req.UserID)
	tags := e.preferredTags(ctx, hist.interactedIDs())

	exclude := make(map[uint]struct{}, len(req.Exclude))
	for _, id := range req.Exclude {
		exclude[id] = struct{}{}
	}

	candidates, radiusKm, widened := e.fetchWithWidening(ctx, req.Origin, exclude)
	observability.FeedCandidates.Observe(float64(len(candidates)))
	span.SetAttributes(
		attribute.Int("feed.candidates", len(candidates)),
		attribute.Float64("feed.radius_km", radiusKm),
		attribute.Bool("feed.widened", widened),
	)

	debug := Debug{
		CandidatesFound: len(candidates),
		LikedCount:      len(hist.liked),
		CommentedCount:  len(hist.commented),
		PreferredTags:   topTags(tags, 5),
		RadiusKm:        radiusKm,
		Widened:         widened,
	}

	if len(candidates) == 0 {
		observability.FeedRequests.WithLabelValues("empty").Inc()
		return Result{Posts: []Candidate{}, Debug: debug}
	}

	e.scoreAll(candidates, hist, tags)
	ranked := e.bandShuffle(candidates)

	hasMore := len(ranked) > pageSize
	if len(ranked) > pageSize {
		ranked = ranked[:pageSize]
	}

	observability.FeedRequests.WithLabelValues("ok").Inc()
	e.logger.DebugContext(ctx, "recommendation page built",
		slog.Int("returned", len(ranked)),
		slog.Int("candidates", debug.CandidatesFound),
		slog.Float64("radius_km", radiusKm),
	)

	return Result{Posts: ranked, HasMore: hasMore, Debug: debug}
}

// More is a convenience wrapper for infinite scroll: same request, default
// page size, with the already shown ids excluded.
func (e *Engine) More(ctx context.Context, userID uint, origin Coordinates, shown []uint) Result {
	return e.Recommend(ctx, Request{
		UserID:   userID,
		Origin:   origin,
		Exclude:  shown,
		PageSize: DefaultPageSize,
	})
}

func (e *Engine) shuffle(cands []Candidate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng.Shuffle(len(cands), func(i, j int) {
		cands[i], cands[j] = cands[j], cands[i]
	})
}
