package delivery

import (
	"github.com/gofiber/fiber/v2"

	"attendance/config"
	"attendance/domain"
	"attendance/middleware"
)

type notifHandler struct {
	uc domain.NotificationHistoryUseCase
}

func NewNotificationHandler(app *fiber.App, uc domain.NotificationHistoryUseCase) {
	handler := &notifHandler{
		uc: uc,
	}

	group := app.Group("/notification")
	group.Get("/history", handler.GetHistory)
}

func NewNotificationHandlerDeploy(app *fiber.App, uc domain.NotificationHistoryUseCase) {
	handler := &notifHandler{
		uc: uc,
	}

	group := app.Group("/notification")
	group.Get("/history", middleware.AuthRequired(), middleware.RoleRequired("admin"), handler.GetHistory)
}

func (nh *notifHandler) GetHistory(c *fiber.Ctx) error {
	records, err := nh.uc.GetHistory(c.Context())
	if err != nil {
		config.PrintLogInfo(nil, fiber.StatusInternalServerError, "GetHistory")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to get notification history",
		})
	}

	config.PrintLogInfo(nil, fiber.StatusOK, "GetHistory")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Successfully retrieved notification history",
		"data":    records,
	})
}
