package handlers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/ven_shop/dto"
	"github.com/lac-hong-legacy/ven_shop/shared"
)

type CronHandler struct {
	sweeper ReminderSweeper
}

func NewCronHandler(sweeper ReminderSweeper) *CronHandler {
	return &CronHandler{sweeper: sweeper}
}

// @Summary Run abandoned cart sweep
// @Description Send reminders for stale carts. Called by the external scheduler.
// @Tags cron
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Bearer <CRON_SECRET>"
// @Success 200 {object} dto.ReminderSweepResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/cron/abandoned-cart [get]
func (h *CronHandler) AbandonedCart(c *fiber.Ctx) error {
	summary, err := h.sweeper.RunReminderSweep(c.UserContext())
	if err != nil {
		log.WithError(err).Error("Abandoned cart sweep failed")
		return shared.ResponseRaw(c, fiber.StatusInternalServerError, dto.ErrorResponse{Error: "sweep failed"})
	}

	return shared.ResponseRaw(c, fiber.StatusOK, dto.ReminderSweepResponse{
		OK:      true,
		Sent:    summary.Sent,
		Failed:  summary.Failed,
		Skipped: summary.Skipped,
	})
}
