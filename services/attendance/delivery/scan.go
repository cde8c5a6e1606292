package delivery

import (
	"errors"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"

	"attendance/config"
	"attendance/domain"
	"attendance/services/attendance/usecase"
)

type scanHandler struct {
	session domain.ScanSessionUseCase
}

// NewScanHandler wires the scanner lifecycle routes. One scanner terminal
// talks to one session.
func NewScanHandler(app *fiber.App, session domain.ScanSessionUseCase) {
	handler := &scanHandler{
		session: session,
	}

	group := app.Group("/scan")
	group.Post("/session", handler.OpenSession)
	group.Post("/frame", handler.Frame)
	group.Post("/manual", handler.Manual)
	group.Post("/next", handler.ScanNext)
	group.Post("/reset", handler.Reset)
	group.Post("/camera-error", handler.CameraError)
	group.Post("/retry-camera", handler.RetryCamera)
	group.Get("/window", handler.Window)
	group.Get("/state", handler.State)
}

type framePayload struct {
	Payload string `json:"payload" valid:"required~Payload is required"`
	Action  string `json:"action" valid:"in(time-in|time-out)~Invalid action,optional"`
}

type manualPayload struct {
	SubjectID string `json:"subject_id" valid:"required~Subject ID is required"`
	Action    string `json:"action" valid:"in(time-in|time-out)~Invalid action,optional"`
}

func (h *scanHandler) OpenSession(c *fiber.Ctx) error {
	if err := h.session.Open(c.Context()); err != nil {
		return scanError(c, "OpenSession", err)
	}

	config.PrintLogInfo(nil, fiber.StatusOK, "OpenSession")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Session opened",
		"data":    fiber.Map{"state": h.session.State()},
	})
}

func (h *scanHandler) Frame(c *fiber.Ctx) error {
	var payload framePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	result, err := h.session.Frame(c.Context(), payload.Payload, payload.Action)
	if err != nil {
		config.ScansTotal.WithLabelValues(usecase.ErrorOutcome(err)).Inc()
		return scanError(c, "Frame", err)
	}

	recordScanMetrics(result)
	config.PrintLogInfo(nil, fiber.StatusCreated, "Frame")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Attendance recorded",
		"data":    result,
	})
}

func (h *scanHandler) Manual(c *fiber.Ctx) error {
	var payload manualPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	if _, err := govalidator.ValidateStruct(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	result, err := h.session.ManualEntry(c.Context(), payload.SubjectID, payload.Action)
	if err != nil {
		config.ScansTotal.WithLabelValues(usecase.ErrorOutcome(err)).Inc()
		return scanError(c, "Manual", err)
	}

	recordScanMetrics(result)
	config.PrintLogInfo(nil, fiber.StatusCreated, "Manual")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Attendance recorded",
		"data":    result,
	})
}

func (h *scanHandler) ScanNext(c *fiber.Ctx) error {
	if err := h.session.ScanNext(c.Context()); err != nil {
		return scanError(c, "ScanNext", err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Ready for next scan",
		"data":    fiber.Map{"state": h.session.State()},
	})
}

func (h *scanHandler) Reset(c *fiber.Ctx) error {
	if err := h.session.Reset(c.Context()); err != nil {
		return scanError(c, "Reset", err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Session reset",
		"data":    fiber.Map{"state": h.session.State()},
	})
}

func (h *scanHandler) CameraError(c *fiber.Ctx) error {
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "invalid request body",
		})
	}

	if err := h.session.CameraError(c.Context(), payload.Reason); err != nil {
		return scanError(c, "CameraError", err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Camera error registered",
		"data":    fiber.Map{"state": h.session.State()},
	})
}

func (h *scanHandler) RetryCamera(c *fiber.Ctx) error {
	if err := h.session.RetryCamera(c.Context()); err != nil {
		return scanError(c, "RetryCamera", err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Scanning resumed",
		"data":    fiber.Map{"state": h.session.State()},
	})
}

func (h *scanHandler) Window(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Current time window",
		"data":    usecase.EvaluateWindow(time.Now()),
	})
}

func (h *scanHandler) State(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Session state",
		"data": fiber.Map{
			"state":       h.session.State(),
			"last_result": h.session.LastResult(),
		},
	})
}

func recordScanMetrics(result *domain.ScanResult) {
	config.ScansTotal.WithLabelValues("recorded").Inc()
	config.EventsRecorded.WithLabelValues(result.Action).Inc()
	switch {
	case result.Notified:
		config.NotificationsTotal.WithLabelValues(domain.DeliveryDelivered).Inc()
	case result.NotificationWarning != "":
		config.NotificationsTotal.WithLabelValues(domain.DeliveryFailed).Inc()
	}
}

// scanError maps the scan error taxonomy onto transient toast responses.
func scanError(c *fiber.Ctx, functionName string, err error) error {
	status := fiber.StatusInternalServerError
	message := "Failed to record attendance"

	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		status = fiber.StatusBadRequest
		message = "Unrecognized code, please rescan"
	case errors.Is(err, domain.ErrUnknownSubject):
		status = fiber.StatusNotFound
		message = "Subject not found"
	case errors.Is(err, domain.ErrScanSuppressed):
		status = fiber.StatusConflict
		message = "Duplicate scan ignored"
	case errors.Is(err, domain.ErrSessionState):
		status = fiber.StatusConflict
		message = "Action not available right now"
	case errors.Is(err, domain.ErrRecordStore):
		status = fiber.StatusInternalServerError
		message = "Could not save attendance, please rescan"
	}

	config.PrintLogInfo(nil, status, functionName)
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"detail":  err.Error(),
	})
}
