package delivery

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"attendance/config"
	"attendance/domain"
	"attendance/middleware"
)

type attendanceHandler struct {
	repo domain.AttendanceRepo
}

func NewAttendanceHandler(app *fiber.App, repo domain.AttendanceRepo) {
	handler := &attendanceHandler{
		repo: repo,
	}

	group := app.Group("/attendance")
	group.Get("/events", handler.ListEvents)
	group.Get("/status/:subject_id", handler.CurrentStatus)
}

func NewAttendanceHandlerDeploy(app *fiber.App, repo domain.AttendanceRepo) {
	handler := &attendanceHandler{
		repo: repo,
	}

	group := app.Group("/attendance")
	group.Get("/events", middleware.AuthRequired(), middleware.RoleRequired("admin", "staff"), handler.ListEvents)
	group.Get("/status/:subject_id", middleware.AuthRequired(), middleware.RoleRequired("admin", "staff"), handler.CurrentStatus)
}

func (h *attendanceHandler) ListEvents(c *fiber.Ctx) error {
	subjectID := c.Query("subject_id")

	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "date must be YYYY-MM-DD",
			})
		}
		day = parsed
	}

	events, err := h.repo.ListEventsByDay(c.Context(), subjectID, day)
	if err != nil {
		config.PrintLogInfo(nil, fiber.StatusInternalServerError, "ListEvents")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to list attendance events",
		})
	}

	config.PrintLogInfo(nil, fiber.StatusOK, "ListEvents")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Attendance events retrieved",
		"data":    events,
	})
}

// CurrentStatus reports the subject's most recent action today; that event's
// action is the subject's current in/out state.
func (h *attendanceHandler) CurrentStatus(c *fiber.Ctx) error {
	subjectID := c.Params("subject_id")

	event, err := h.repo.LatestEventForDay(c.Context(), subjectID, time.Now())
	if err != nil {
		config.PrintLogInfo(nil, fiber.StatusInternalServerError, "CurrentStatus")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch current status",
		})
	}

	status := "absent"
	if event != nil {
		status = event.Status
	}

	config.PrintLogInfo(nil, fiber.StatusOK, "CurrentStatus")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Current status retrieved",
		"data": fiber.Map{
			"subject_id": subjectID,
			"status":     status,
			"event":      event,
		},
	})
}
