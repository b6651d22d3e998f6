package handlers

import (
	"context"
	"net/http"

	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

func (h *ResultHandler) GetResult(c *gin.Context) {
	result, err := h.Service.GetResult(context.Background(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ResultHandler) GetMyResults(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	results, err := h.Service.GetResultsByUser(context.Background(), uid)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *ResultHandler) GetAllResults(c *gin.Context) {
	results, err := h.Service.GetAllResults(context.Background())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
