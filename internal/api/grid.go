package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"classboard/internal/apperr"
	"classboard/internal/dateutil"
	"classboard/internal/metrics"
	"classboard/internal/model"
)

// GridResponse is the body of GET /api/v1/grid.
type GridResponse struct {
	Date string          `json:"date"`
	Grid model.DailyGrid `json:"grid"`
}

// SaveGridRequest is the body of PUT /api/v1/grid. Replace semantics: the
// payload becomes the entire grid for the date; cells not present are
// cleared.
type SaveGridRequest struct {
	Date string                                        `json:"date"`
	Grid map[model.TimeSlot]map[model.ClassGroup]string `json:"grid"`
}

// handleGetGrid returns the full grid for a date.
// GET /api/v1/grid?date=YYYY-MM-DD
func (s *Server) handleGetGrid(c *gin.Context) {
	metrics.IncHTTP("grid_get")

	key, err := s.dateParam(c)
	if err != nil {
		abortError(c, err)
		return
	}

	grid, err := s.db.GetAssignments(c.Request.Context(), key)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, GridResponse{Date: key, Grid: grid})
}

// handlePutGrid replaces the grid for a date.
// PUT /api/v1/grid?date=YYYY-MM-DD
func (s *Server) handlePutGrid(c *gin.Context) {
	metrics.IncHTTP("grid_put")

	var req SaveGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, fmt.Errorf("%w: invalid JSON body: %v", apperr.ErrValidation, err))
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = req.Date
	}
	if dateStr == "" {
		abortError(c, fmt.Errorf("%w: date is required", apperr.ErrInvalidDate))
		return
	}
	key, err := dateutil.Normalize(dateStr)
	if err != nil {
		abortError(c, err)
		return
	}

	grid := model.EmptyGrid()
	vocab := s.classrooms.Load()
	for slot, groups := range req.Grid {
		if !model.IsValidTimeSlot(slot) {
			s.logger.Warn().Str("date", key).Str("time_slot", string(slot)).
				Msg("skipping unknown time slot in grid payload")
			continue
		}
		for group, classroom := range groups {
			if !model.IsValidClassGroup(group) {
				abortError(c, fmt.Errorf("%w: unknown class group %q", apperr.ErrValidation, group))
				return
			}
			if model.IsAssigned(classroom) && vocab != nil && !vocab.Has(classroom) {
				abortError(c, fmt.Errorf("%w: unknown classroom %q", apperr.ErrValidation, classroom))
				return
			}
			grid.Set(slot, group, classroom)
		}
	}

	if err := s.db.ReplaceAssignments(c.Request.Context(), key, grid); err != nil {
		metrics.IncGridCommit("error")
		abortError(c, err)
		return
	}
	metrics.IncGridCommit("ok")

	s.db.RecordAudit(c.Request.Context(), "admin", "grid_replace", key, "")
	s.dayViews.Invalidate(c.Request.Context(), key)

	c.JSON(http.StatusOK, gin.H{"success": true, "date": key})
}

// dateParam reads and normalizes the required date query parameter.
func (s *Server) dateParam(c *gin.Context) (string, error) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return "", fmt.Errorf("%w: date is required", apperr.ErrInvalidDate)
	}
	return dateutil.Normalize(dateStr)
}
