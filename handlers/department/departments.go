package department

import (
	"github.com/deptsearch/deptsearch-api/services"
	"github.com/deptsearch/deptsearch-api/utils/response"
	"github.com/deptsearch/deptsearch-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// DepartmentHandler serves the enriched department detail view
type DepartmentHandler struct {
	enrich *services.EnrichService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(enrich *services.EnrichService) *DepartmentHandler {
	return &DepartmentHandler{enrich: enrich}
}

// HandleDetail handles GET /api/v1/departments/detail?university=&department=
//
// An unknown university still answers 200 with an explicit placeholder
// record; the client renders it the same way as real data.
func (h *DepartmentHandler) HandleDetail(c *fiber.Ctx) error {
	university := validation.SanitizeString(c.Query("university", ""))
	department := validation.SanitizeString(c.Query("department", ""))

	if university == "" || department == "" {
		return response.BadRequest(c, "university and department are required")
	}

	record := h.enrich.GetDepartmentDetails(c.Context(), university, department)
	return response.Success(c, record)
}
