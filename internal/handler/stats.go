package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/zerox-toml/superworld-proof-of-place/internal/middleware"
	"github.com/zerox-toml/superworld-proof-of-place/internal/model"
	"github.com/zerox-toml/superworld-proof-of-place/internal/repository"
	"github.com/zerox-toml/superworld-proof-of-place/internal/service"
)

type StatsHandler struct {
	engine  *service.Engine
	dedup   *repository.DedupRepo
	history *repository.HistoryRepo
	cache   *service.CacheService
}

func NewStatsHandler(engine *service.Engine, dedup *repository.DedupRepo,
	history *repository.HistoryRepo, cache *service.CacheService) *StatsHandler {
	return &StatsHandler{engine: engine, dedup: dedup, history: history, cache: cache}
}

// GetStats handles GET /api/stats: validation totals by classification and
// the sizes of the duplicate indices (the indices grow for the life of the
// process, so their size is worth watching).
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	ctx := c.Context()

	if cached, err := h.cache.GetStats(ctx); err == nil && cached != nil {
		Metrics.CacheHits.Inc()
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
	}
	Metrics.CacheMisses.Inc()

	totals := h.engine.Totals()
	var sum int64
	for _, v := range totals {
		sum += v
	}
	images, texts := h.dedup.Stats()

	resp := fiber.Map{
		"validations": fiber.Map{
			"total":          sum,
			"pass":           totals[model.ClassPass],
			"low_confidence": totals[model.ClassLowConfidence],
			"flagged":        totals[model.ClassFlagged],
		},
		"indices": fiber.Map{
			"image_fingerprints": images,
			"text_fingerprints":  texts,
			"tracked_submitters": h.history.Submitters(),
		},
	}

	if err := h.cache.SetStats(ctx, resp); err != nil {
		middleware.Logger.Warn().Err(err).Msg("stats cache write failed")
	}

	return c.JSON(resp)
}
