package handlers

import (
	"context"
	"net/http"

	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

func NewPaymentHandler(s *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: s}
}

// ProcessPayment charges the caller for a quiz. With selected categories the
// price is base + per-category; otherwise the flat default applies.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req struct {
		SelectedCategories []string `json:"selectedCategories"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}

	amount := service.DefaultQuizPrice
	if len(req.SelectedCategories) > 0 {
		amount = service.PriceForCategories(len(req.SelectedCategories))
	}

	payment, err := h.Service.ProcessPayment(context.Background(), uid, amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHandler) GetMyPayments(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	payments, err := h.Service.GetPaymentsByUser(context.Background(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetAllPayments(c *gin.Context) {
	payments, err := h.Service.GetAllPayments(context.Background())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
