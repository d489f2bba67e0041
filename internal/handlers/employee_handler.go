// internal/handlers/employee_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chandra122/facialtimesheet-final/internal/models"
	"github.com/chandra122/facialtimesheet-final/internal/storage"
)

type EmployeeHandler struct {
	Store *storage.Store
}

func NewEmployeeHandler(store *storage.Store) *EmployeeHandler {
	return &EmployeeHandler{Store: store}
}

type createEmployeeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	emp := models.Employee{Name: strings.TrimSpace(req.Name)}
	if emp.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	if err := h.Store.CreateEmployee(c.Request.Context(), &emp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Employee added", "id": emp.ID})
}

func (h *EmployeeHandler) List(c *gin.Context) {
	emps, err := h.Store.ListEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": emps})
}
