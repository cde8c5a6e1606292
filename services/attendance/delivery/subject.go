package delivery

import (
	"github.com/gofiber/fiber/v2"

	"attendance/config"
	"attendance/domain"
	"attendance/middleware"
)

type subjectHandler struct {
	uc domain.SubjectUseCase
}

// NewSubjectHandler exposes the subject list backing the manual-entry
// autocomplete on the scanner UI.
func NewSubjectHandler(app *fiber.App, uc domain.SubjectUseCase) {
	handler := &subjectHandler{
		uc: uc,
	}

	group := app.Group("/subjects")
	group.Get("/", handler.GetAll)
}

func NewSubjectHandlerDeploy(app *fiber.App, uc domain.SubjectUseCase) {
	handler := &subjectHandler{
		uc: uc,
	}

	group := app.Group("/subjects")
	group.Get("/", middleware.AuthRequired(), middleware.RoleRequired("admin", "staff"), handler.GetAll)
}

func (h *subjectHandler) GetAll(c *fiber.Ctx) error {
	role := c.Query("role")
	if role != "" && role != domain.RoleStudent && role != domain.RoleTeacher {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "role must be student or teacher",
		})
	}

	subjects, err := h.uc.GetAllSubjects(c.Context(), role)
	if err != nil {
		config.PrintLogInfo(nil, fiber.StatusInternalServerError, "GetAllSubjects")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to get subjects",
		})
	}

	config.PrintLogInfo(nil, fiber.StatusOK, "GetAllSubjects")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Successfully retrieved subjects",
		"data":    subjects,
	})
}
