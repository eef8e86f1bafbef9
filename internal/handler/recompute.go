package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/whoiscaerus/traderank/internal/middleware"
	"github.com/whoiscaerus/traderank/internal/service"
)

type RecomputeHandler struct {
	svc *service.RecomputeService
}

func NewRecomputeHandler(svc *service.RecomputeService) *RecomputeHandler {
	return &RecomputeHandler{svc: svc}
}

// RecomputeAll handles POST /api/recompute. A failed pass leaves previously
// computed scores untouched; the caller may retry.
func (h *RecomputeHandler) RecomputeAll(c fiber.Ctx) error {
	summary, err := h.svc.RecomputeAll(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("batch recompute failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "PASS_FAILED",
			"Recomputation pass aborted; no scores were changed")
	}

	return c.JSON(summary)
}

// RecomputeOne handles POST /api/recompute/:userId. The result is a preview
// unless persist=true is passed.
func (h *RecomputeHandler) RecomputeOne(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	persist := fiber.Query[bool](c, "persist")

	resp, err := h.svc.RecomputeOne(c.Context(), userID, persist)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
		}
		middleware.Logger.Error().Err(err).Str("user_id", userID).Msg("single-user recompute failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "PASS_FAILED",
			"Recomputation failed; the user's score was not changed")
	}

	return c.JSON(resp)
}
