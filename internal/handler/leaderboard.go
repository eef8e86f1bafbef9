package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/whoiscaerus/traderank/internal/middleware"
	"github.com/whoiscaerus/traderank/internal/service"
)

type LeaderboardHandler struct {
	svc *service.ScoreService
}

func NewLeaderboardHandler(svc *service.ScoreService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// Get handles GET /api/leaderboard
func (h *LeaderboardHandler) Get(c fiber.Ctx) error {
	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	entries, err := h.svc.Leaderboard(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch leaderboard")
	}

	return c.JSON(fiber.Map{"entries": entries})
}
