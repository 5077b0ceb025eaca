package shadow

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bkovacic/liftstats/internal/instrumentation"
	"github.com/bkovacic/liftstats/internal/stats"
	"github.com/bkovacic/liftstats/internal/telemetry/tracing"
	"github.com/bkovacic/liftstats/pkg"
)

// Handler is the HTTP surface of the stats engine. Responses are
// cached briefly per user and range: the numbers only change when new
// sets are logged, and recomputation on every chart pan is wasted
// work.
type Handler struct {
	facade          *Facade
	cache           *freecache.Cache
	cacheTTLSeconds int
	instr           *instrumentation.Instrumentation
}

func NewHandler(
	facade *Facade,
	cacheSizeBytes int,
	cacheTTLSeconds int,
	instr *instrumentation.Instrumentation,
) *Handler {
	return &Handler{
		facade:          facade,
		cache:           freecache.NewCache(cacheSizeBytes),
		cacheTTLSeconds: cacheTTLSeconds,
		instr:           instr,
	}
}

func (h *Handler) HandleWorkoutStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.workoutStats")
	defer span.End()

	params := stats.Params{
		UserID:     r.URL.Query().Get("user_id"),
		ExerciseID: r.URL.Query().Get("exercise_id"),
	}
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		from, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			http.Error(w, "error, invalid from timestamp", http.StatusBadRequest)
			return
		}
		params.From = &from
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		to, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			http.Error(w, "error, invalid to timestamp", http.StatusBadRequest)
			return
		}
		params.To = &to
	}

	cacheKey := h.cacheKey(params)
	if cached, err := h.cache.Get(cacheKey); err == nil {
		h.instr.CounterStatsCacheHits.Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}
	h.instr.CounterStatsCacheMisses.Inc()

	result, err := h.facade.Stats(ctx, params)
	if err != nil {
		if errors.Is(err, stats.ErrNoAuthenticatedUser) {
			http.Error(w, "no authenticated user", http.StatusUnauthorized)
			return
		}
		log.Errorf("workout stats for [%s]: %s", params.UserID, err)
		http.Error(w, "failed to compute workout stats", http.StatusInternalServerError)
		return
	}

	var resultJson []byte
	if result.V2 != nil {
		resultJson, err = json.Marshal(result.V2)
	} else {
		resultJson, err = json.Marshal(result.V1)
	}
	if err != nil {
		log.Errorf("marshal workout stats: %s", err)
		http.Error(w, "failed to compute workout stats", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(cacheKey, resultJson, h.cacheTTLSeconds); err != nil {
		log.Debugf("cache workout stats response: %s", err)
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resultJson)
}

func (h *Handler) cacheKey(params stats.Params) []byte {
	from, to := "", ""
	if params.From != nil {
		from = params.From.Format(time.RFC3339)
	}
	if params.To != nil {
		to = params.To.Format(time.RFC3339)
	}
	return []byte(fmt.Sprintf(
		"stats::%s::%s::%s::%s::%s",
		h.facade.Mode(), params.UserID, from, to, params.ExerciseID,
	))
}
