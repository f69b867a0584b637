package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/recalibr/recalibr/backend/internal/application/services"
	"github.com/recalibr/recalibr/backend/internal/domain/entities"
	"github.com/recalibr/recalibr/backend/internal/domain/providers"
	"github.com/recalibr/recalibr/backend/internal/infrastructure/observability"
	apperrors "github.com/recalibr/recalibr/backend/pkg/errors"
)

// maxEstimateBytes bounds the request body; estimates are small text.
const maxEstimateBytes = 1 << 20

// ScrubHandler handles estimate scrub requests
type ScrubHandler struct {
	scrubService *services.ScrubService
	cache        providers.CacheProvider
	cacheTTL     int
	metrics      *observability.Metrics
}

// NewScrubHandler creates a new scrub handler. Cache and metrics are
// optional; the handler degrades to uncached, unmetered operation.
func NewScrubHandler(scrubService *services.ScrubService, cache providers.CacheProvider, cacheTTL int, metrics *observability.Metrics) *ScrubHandler {
	return &ScrubHandler{
		scrubService: scrubService,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      metrics,
	}
}

// Scrub handles POST /api/scrub
func (h *ScrubHandler) Scrub(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req entities.ScrubRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxEstimateBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithAppError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	if req.EstimateText == "" {
		respondWithAppError(w, apperrors.NewValidationError("estimate_text is required"))
		return
	}

	// The engine is a pure function of the request, so identical requests
	// can be served from cache.
	cacheKey := scrubCacheKey(req)
	if h.cache != nil {
		if data, err := h.cache.Get(ctx, cacheKey); err == nil {
			var cached entities.ScrubResult
			if json.Unmarshal(data, &cached) == nil {
				if h.metrics != nil {
					observability.RecordCacheHit(ctx, h.metrics, "scrub_result")
				}
				respondWithJSON(w, http.StatusOK, &cached)
				return
			}
		}
		if h.metrics != nil {
			observability.RecordCacheMiss(ctx, h.metrics, "scrub_result")
		}
	}

	result := h.scrubService.Scrub(req)

	if h.metrics != nil {
		observability.RecordScrubMetric(ctx, h.metrics, string(result.Summary.Status), result.Summary.ScrubOnlyCount)
	}

	if h.cache != nil && result.Error == "" {
		if data, err := json.Marshal(result); err == nil {
			_ = h.cache.Set(ctx, cacheKey, data, h.cacheTTL)
		}
	}

	respondWithJSON(w, http.StatusOK, result)
}

func scrubCacheKey(req entities.ScrubRequest) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return "scrub:" + hex.EncodeToString(sum[:])
}
