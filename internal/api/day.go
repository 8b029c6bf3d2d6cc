package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"classboard/internal/board"
	"classboard/internal/dateutil"
	"classboard/internal/metrics"
)

// DayScheduleResponse is the body of GET /api/v1/day-schedule: the merged
// projection of every valid cell for one date.
type DayScheduleResponse struct {
	Date  string           `json:"date"`
	Items []board.CellView `json:"items"`
}

// handleDaySchedule returns the merged day view. The date defaults to today
// in school-local time. The response is cached per date when the Redis cache
// is configured; grid and comment writes invalidate it.
// GET /api/v1/day-schedule?date=YYYY-MM-DD
func (s *Server) handleDaySchedule(c *gin.Context) {
	metrics.IncHTTP("day_schedule")

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = dateutil.TodayJST()
	}
	key, err := dateutil.Normalize(dateStr)
	if err != nil {
		abortError(c, err)
		return
	}

	if payload, found := s.dayViews.Get(c.Request.Context(), key); found {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	b, err := board.Load(c.Request.Context(), key, s.db, s.db, s.lectures, &s.logger)
	if err != nil {
		abortError(c, err)
		return
	}

	resp := DayScheduleResponse{Date: key, Items: b.ViewAll()}
	payload, err := json.Marshal(resp)
	if err != nil {
		abortError(c, err)
		return
	}
	s.dayViews.Set(c.Request.Context(), key, payload)

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
