// internal/handlers/timesheet_handler.go
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chandra122/facialtimesheet-final/internal/attendance"
	"github.com/chandra122/facialtimesheet-final/internal/models"
	"github.com/chandra122/facialtimesheet-final/internal/storage"
	"github.com/chandra122/facialtimesheet-final/internal/vision"
)

// EmployeeDirectory resolves employee ids before a check-in is accepted.
type EmployeeDirectory interface {
	FindEmployee(ctx context.Context, id uint) (*models.Employee, error)
}

type TimesheetHandler struct {
	Service   *attendance.Service
	Directory EmployeeDirectory
}

func NewTimesheetHandler(service *attendance.Service, directory EmployeeDirectory) *TimesheetHandler {
	return &TimesheetHandler{Service: service, Directory: directory}
}

// CheckIn accepts a multipart form with an employee_id field and an
// image file, runs the mood pipeline, and opens a session.
func (h *TimesheetHandler) CheckIn(c *gin.Context) {
	employeeID, ok := parseEmployeeID(strings.TrimSpace(c.PostForm("employee_id")))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_id required"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image provided"})
		return
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	if _, err := h.Directory.FindEmployee(c.Request.Context(), employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load employee"})
		return
	}

	result, err := h.Service.CheckIn(c.Request.Context(), employeeID, buf)
	if err != nil {
		switch {
		case errors.Is(err, vision.ErrDecode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
		case errors.Is(err, storage.ErrSessionAlreadyOpen):
			c.JSON(http.StatusConflict, gin.H{"error": "employee already checked in"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "check-in failed", "detail": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Check-in recorded successfully",
		"mood":    result.Summary.Label,
		"mood_details": gin.H{
			"dominant":     result.Summary.Dominant,
			"confidence":   result.Summary.Confidence,
			"top_emotions": result.Summary.Top,
		},
		"timesheet_id": result.Record.ID,
	})
}

type checkOutRequest struct {
	EmployeeID uint `json:"employee_id" binding:"required"`
}

// CheckOut closes the employee's most recent open session.
func (h *TimesheetHandler) CheckOut(c *gin.Context) {
	var req checkOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	row, err := h.Service.CheckOut(c.Request.Context(), req.EmployeeID)
	if err != nil {
		if errors.Is(err, storage.ErrNoOpenSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active check-in found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "check-out failed", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Check-out successful",
		"check_out_time": row.CheckOut.Format("15:04"),
	})
}

// List returns all attendance records, newest check-in first.
func (h *TimesheetHandler) List(c *gin.Context) {
	rows, err := h.Service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load", "detail": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, timesheetItem(&rows[i]))
	}
	c.JSON(http.StatusOK, out)
}

func timesheetItem(t *models.Timesheet) gin.H {
	item := gin.H{
		"id":          t.ID,
		"employee_id": t.EmployeeID,
		"date":        t.CheckIn.Format("2006-01-02"),
		"checkIn":     t.CheckIn.Format("15:04"),
		"checkOut":    nil,
		"status":      t.EntryStatus,
		"mood":        t.Mood,
		"total_hours": t.TotalHours(),
	}
	if t.CheckOut != nil {
		item["checkOut"] = t.CheckOut.Format("15:04")
	}
	return item
}

func parseEmployeeID(s string) (uint, bool) {
	if s == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
