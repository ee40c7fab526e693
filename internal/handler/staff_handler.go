package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-exams-api/internal/models"
	"github.com/noah-isme/school-exams-api/internal/service"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
	"github.com/noah-isme/school-exams-api/pkg/response"
)

type staffService interface {
	List(ctx context.Context) ([]models.StaffMember, error)
	Create(ctx context.Context, req service.StaffRequest) (*models.StaffMember, error)
	Update(ctx context.Context, id string, req service.StaffRequest) (*models.StaffMember, error)
	Delete(ctx context.Context, id string) error
}

// StaffHandler exposes the facilitator roster.
type StaffHandler struct {
	staff staffService
}

func NewStaffHandler(staff staffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// List godoc
// @Summary List staff in roster order
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.staff.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, staff)
}

// Create godoc
// @Summary Add staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body service.StaffRequest true "Staff payload"
// @Success 201 {object} response.Envelope
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req service.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	member, err := h.staff.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update staff member
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param payload body service.StaffRequest true "Staff payload"
// @Success 200 {object} response.Envelope
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	var req service.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	member, err := h.staff.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}

// Delete godoc
// @Summary Remove staff member
// @Tags Staff
// @Param id path string true "Staff ID"
// @Success 204
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.staff.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
