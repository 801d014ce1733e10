package admin

import (
	"encoding/json"
	"strconv"

	"github.com/deptsearch/deptsearch-api/database"
	"github.com/deptsearch/deptsearch-api/model"
	"github.com/deptsearch/deptsearch-api/utils/response"
	"github.com/deptsearch/deptsearch-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CuratedHandler manages hand-verified admission records
type CuratedHandler struct {
	db        database.Storage
	validator *validation.Validator
}

// NewCuratedHandler creates a new curated records handler
func NewCuratedHandler(db database.Storage) *CuratedHandler {
	return &CuratedHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateCuratedRequest is the request body for creating a curated record
type CreateCuratedRequest struct {
	ExternalID     string                     `json:"external_id" validate:"required,min=3,max=120"`
	UniversityName string                     `json:"university_name" validate:"required,min=2,max=120"`
	DepartmentName string                     `json:"department_name" validate:"required,min=2,max=120"`
	Location       string                     `json:"location" validate:"omitempty,max=40"`
	Field          string                     `json:"field" validate:"omitempty,max=40"`
	AdmissionData  []model.AdmissionYearEntry `json:"admission_data" validate:"omitempty,dive"`
	Description    string                     `json:"description" validate:"omitempty,max=2000"`
	TuitionFee     string                     `json:"tuition_fee" validate:"omitempty,max=60"`
	EmploymentRate string                     `json:"employment_rate" validate:"omitempty,max=60"`
	DeptRanking    string                     `json:"department_ranking" validate:"omitempty,max=60"`
}

// UpdateCuratedRequest is the request body for updating a curated record
type UpdateCuratedRequest struct {
	Location       string                     `json:"location" validate:"omitempty,max=40"`
	Field          string                     `json:"field" validate:"omitempty,max=40"`
	AdmissionData  []model.AdmissionYearEntry `json:"admission_data" validate:"omitempty,dive"`
	Description    string                     `json:"description" validate:"omitempty,max=2000"`
	TuitionFee     string                     `json:"tuition_fee" validate:"omitempty,max=60"`
	EmploymentRate string                     `json:"employment_rate" validate:"omitempty,max=60"`
	DeptRanking    string                     `json:"department_ranking" validate:"omitempty,max=60"`
	IsActive       *bool                      `json:"is_active" validate:"omitempty"`
}

// HandleList handles GET /api/v1/admin/curated
func (h *CuratedHandler) HandleList(c *fiber.Ctx) error {
	activeOnly := c.Query("active", "") == "true"

	records, err := h.db.ListCuratedDepartments(activeOnly)
	if err != nil {
		return response.InternalServerError(c, "Failed to list curated records")
	}
	return response.Success(c, records)
}

// HandleGet handles GET /api/v1/admin/curated/:id
func (h *CuratedHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid record id")
	}

	record, err := h.db.GetCuratedDepartment(id)
	if err == gorm.ErrRecordNotFound {
		return response.NotFound(c, "Curated record not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch curated record")
	}
	return response.Success(c, record)
}

// HandleCreate handles POST /api/v1/admin/curated. Changes surface in
// search after the next catalog reload.
func (h *CuratedHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateCuratedRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	admissionJSON, err := json.Marshal(req.AdmissionData)
	if err != nil {
		return response.BadRequest(c, "Invalid admission data")
	}

	record := model.CuratedDepartment{
		ExternalID:     validation.SanitizeString(req.ExternalID),
		UniversityName: validation.SanitizeString(req.UniversityName),
		DepartmentName: validation.SanitizeString(req.DepartmentName),
		Location:       req.Location,
		Field:          req.Field,
		AdmissionData:  datatypes.JSON(admissionJSON),
		Description:    req.Description,
		TuitionFee:     req.TuitionFee,
		EmploymentRate: req.EmploymentRate,
		DeptRanking:    req.DeptRanking,
		IsActive:       true,
	}

	if err := h.db.CreateCuratedDepartment(&record); err != nil {
		return response.Conflict(c, "Curated record already exists or could not be created")
	}
	return response.Created(c, record)
}

// HandleUpdate handles PUT /api/v1/admin/curated/:id
func (h *CuratedHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid record id")
	}

	record, err := h.db.GetCuratedDepartment(id)
	if err == gorm.ErrRecordNotFound {
		return response.NotFound(c, "Curated record not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch curated record")
	}

	var req UpdateCuratedRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	if req.Location != "" {
		record.Location = req.Location
	}
	if req.Field != "" {
		record.Field = req.Field
	}
	if req.AdmissionData != nil {
		admissionJSON, err := json.Marshal(req.AdmissionData)
		if err != nil {
			return response.BadRequest(c, "Invalid admission data")
		}
		record.AdmissionData = datatypes.JSON(admissionJSON)
	}
	if req.Description != "" {
		record.Description = req.Description
	}
	if req.TuitionFee != "" {
		record.TuitionFee = req.TuitionFee
	}
	if req.EmploymentRate != "" {
		record.EmploymentRate = req.EmploymentRate
	}
	if req.DeptRanking != "" {
		record.DeptRanking = req.DeptRanking
	}
	if req.IsActive != nil {
		record.IsActive = *req.IsActive
	}

	if err := h.db.UpdateCuratedDepartment(record); err != nil {
		return response.InternalServerError(c, "Failed to update curated record")
	}
	return response.Success(c, record)
}

// HandleDelete handles DELETE /api/v1/admin/curated/:id
func (h *CuratedHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid record id")
	}

	if err := h.db.DeleteCuratedDepartment(id); err != nil {
		return response.InternalServerError(c, "Failed to delete curated record")
	}
	return response.SuccessWithMessage(c, "Curated record deleted", nil)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}
