package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/whoiscaerus/traderank/internal/middleware"
	"github.com/whoiscaerus/traderank/internal/repository"
)

type StatsHandler struct {
	repo *repository.UserRepo
}

func NewStatsHandler(repo *repository.UserRepo) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.repo.GetStats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}
