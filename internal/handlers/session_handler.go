package handlers

import (
	"context"
	"net/http"

	"assessment-service/internal/models"
	"assessment-service/internal/selection"
	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// StartQuiz opens a session for the caller. The profile travels with the
// request so feedback can use it later; category selection is optional and
// defaults to the balanced five-category draw.
func (h *SessionHandler) StartQuiz(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req struct {
		Age                int                         `json:"age"`
		Interests          []string                    `json:"interests"`
		Strengths          []string                    `json:"strengths"`
		WeakSubjects       []string                    `json:"weakSubjects"`
		SelectedCategories []string                    `json:"selectedCategories"`
		Distribution       []models.CategoryPercentage `json:"categoryDistribution"`
		MaxQuestions       int                         `json:"maxQuestions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	profile := &models.StudentProfile{
		Age:          req.Age,
		Interests:    req.Interests,
		Strengths:    req.Strengths,
		WeakSubjects: req.WeakSubjects,
	}
	criteria := selection.Criteria{
		SelectedCategories: req.SelectedCategories,
		Distribution:       req.Distribution,
		MaxQuestions:       req.MaxQuestions,
	}

	session, err := h.Service.StartQuiz(context.Background(), uid, profile, criteria)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(context.Background(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// RecordAnswer stores one answer; answers may arrive in any order and a
// later answer for the same question overwrites the earlier one.
func (h *SessionHandler) RecordAnswer(c *gin.Context) {
	var req struct {
		QuestionIndex *int `json:"questionIndex" binding:"required"`
		OptionIndex   *int `json:"optionIndex" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	err := h.Service.RecordAnswer(context.Background(), c.Param("id"), *req.QuestionIndex, *req.OptionIndex)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Answer recorded"})
}

func (h *SessionHandler) SubmitQuiz(c *gin.Context) {
	var req struct {
		Answers []int `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	result, err := h.Service.SubmitQuiz(context.Background(), c.Param("id"), req.Answers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SessionHandler) GetSecurityStatus(c *gin.Context) {
	status := h.Service.GetSecurityStatus(context.Background(), c.Param("id"))
	c.JSON(http.StatusOK, status)
}

// ReportViolation is the page-hidden signal from the client. It trips the
// one-way latch; there is no self-service recovery.
func (h *SessionHandler) ReportViolation(c *gin.Context) {
	if err := h.Service.ReportHidden(context.Background(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session locked"})
}
