package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-exams-api/internal/models"
	"github.com/noah-isme/school-exams-api/internal/service"
	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
	"github.com/noah-isme/school-exams-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.StudentDetail, error)
	Create(ctx context.Context, req service.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, req service.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

type scoreService interface {
	Record(ctx context.Context, studentID, subject string, req service.ScoreEntryRequest) (*models.StudentScore, error)
}

// StudentHandler exposes enrolment and score entry endpoints.
type StudentHandler struct {
	students studentService
	scores   scoreService
}

func NewStudentHandler(students studentService, scores scoreService) *StudentHandler {
	return &StudentHandler{students: students, scores: scores}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param department query string false "Department"
// @Param class query string false "Class name"
// @Param search query string false "Search by name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Department: c.Query("department"),
		ClassName:  c.Query("class"),
		Search:     strings.TrimSpace(c.Query("search")),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get student with scores
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Create godoc
// @Summary Enrol student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.StudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student bio-data and remarks
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.StudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Delete godoc
// @Summary Remove student and their scores
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RecordScore godoc
// @Summary Enter a subject score
// @Description Section A is capped at 40 and section B at 60 (100 for Junior High Science, scaled by 1/1.4).
// @Tags Scores
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param subject path string true "Subject"
// @Param payload body service.ScoreEntryRequest true "Section marks"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Subject finalized"
// @Router /students/{id}/scores/{subject} [put]
func (h *StudentHandler) RecordScore(c *gin.Context) {
	var req service.ScoreEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	score, err := h.scores.Record(c.Request.Context(), c.Param("id"), c.Param("subject"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, score)
}
