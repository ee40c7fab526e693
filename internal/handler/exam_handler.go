package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-exams-api/internal/dto"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
	"github.com/noah-isme/school-exams-api/pkg/response"
)

type examService interface {
	Broadsheet(ctx context.Context, query dto.ExamQuery) (*dto.BroadsheetResponse, bool, error)
	ReportCard(ctx context.Context, studentID string) (*dto.ReportCardResponse, error)
	FacilitatorPerformance(ctx context.Context, query dto.ExamQuery) (*dto.FacilitatorPerformanceResponse, bool, error)
}

// ExamHandler serves graded results.
type ExamHandler struct {
	exams examService
}

func NewExamHandler(exams examService) *ExamHandler {
	return &ExamHandler{exams: exams}
}

// Broadsheet godoc
// @Summary Ranked master broadsheet
// @Tags Exams
// @Produce json
// @Param department query string true "Department"
// @Param class query string false "Class name; empty grades the whole department"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope "Early-childhood department"
// @Router /exams/broadsheet [get]
func (h *ExamHandler) Broadsheet(c *gin.Context) {
	var query dto.ExamQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	sheet, cached, err := h.exams.Broadsheet(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil, map[string]interface{}{"cached": cached})
}

// ReportCard godoc
// @Summary Report card of one student
// @Tags Exams
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/report-cards/{studentId} [get]
func (h *ExamHandler) ReportCard(c *gin.Context) {
	card, err := h.exams.ReportCard(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, card)
}

// Facilitators godoc
// @Summary Facilitator performance
// @Tags Exams
// @Produce json
// @Param department query string true "Department"
// @Param class query string false "Class name"
// @Success 200 {object} response.Envelope
// @Router /exams/facilitators [get]
func (h *ExamHandler) Facilitators(c *gin.Context) {
	var query dto.ExamQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	perf, cached, err := h.exams.FacilitatorPerformance(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, perf, nil, map[string]interface{}{"cached": cached})
}
