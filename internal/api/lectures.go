package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"classboard/internal/cache"
	"classboard/internal/db"
	"classboard/internal/metrics"
	"classboard/internal/model"
)

// cachedLectureSource reads lecture info through the in-process TTL cache.
// Lecture data is read-only and owned by the external scheduling source, so
// a short staleness window is acceptable.
type cachedLectureSource struct {
	db    *db.DB
	cache *cache.TTLCache
	ttl   time.Duration
}

func (s cachedLectureSource) FetchLectures(ctx context.Context, date string) ([]model.LectureInfo, error) {
	key := "lectures:" + date
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			return cached.([]model.LectureInfo), nil
		}
	}
	lectures, err := s.db.FetchLectures(ctx, date)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, lectures, s.ttl)
	}
	return lectures, nil
}

// handleGetLectures returns lecture/teacher info for a date. Lecture info is
// supplementary; internal failures degrade to an empty list, never an error.
// GET /api/v1/lectures?date=YYYY-MM-DD
func (s *Server) handleGetLectures(c *gin.Context) {
	metrics.IncHTTP("lectures_get")

	key, err := s.dateParam(c)
	if err != nil {
		abortError(c, err)
		return
	}

	lectures, err := s.lectures.FetchLectures(c.Request.Context(), key)
	if err != nil {
		s.logger.Warn().Err(err).Str("date", key).Msg("lecture fetch degraded to empty")
		metrics.IncDegradedFetch("lectures")
		lectures = nil
	}
	if lectures == nil {
		lectures = []model.LectureInfo{}
	}
	c.JSON(http.StatusOK, lectures)
}
