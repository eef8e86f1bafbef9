package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/whoiscaerus/traderank/internal/middleware"
	"github.com/whoiscaerus/traderank/internal/service"
)

type ScoreHandler struct {
	svc   *service.ScoreService
	cache *service.CacheService
}

func NewScoreHandler(svc *service.ScoreService, cache *service.CacheService) *ScoreHandler {
	return &ScoreHandler{svc: svc, cache: cache}
}

// GetByUserID handles GET /api/scores/:userId
func (h *ScoreHandler) GetByUserID(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if cached, err := h.cache.GetScore(c.Context(), userID); err == nil && cached != nil {
		Metrics.CacheHits.Inc()
		c.Set("Content-Type", "application/json")
		return c.Send(cached)
	}
	Metrics.CacheMisses.Inc()

	resp, err := h.svc.GetCurrentScore(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User has no trust score")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch score")
	}

	if err := h.cache.SetScore(c.Context(), userID, resp); err != nil {
		middleware.Logger.Warn().Err(err).Msg("score cache write failed")
	}

	return c.JSON(resp)
}

// History handles GET /api/scores/:userId/history
func (h *ScoreHandler) History(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	logs, err := h.svc.History(c.Context(), userID, limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch history")
	}

	return c.JSON(fiber.Map{
		"userId":  userID,
		"entries": logs,
	})
}
