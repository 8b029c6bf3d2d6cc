// Package api is the HTTP surface of the classroom board: a public read
// side (grid, comments, lectures, merged day view) and a token-guarded
// admin side (grid replace, comment writes, audit export).
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"classboard/internal/apperr"
	"classboard/internal/cache"
	"classboard/internal/config"
	"classboard/internal/db"
	"classboard/internal/model"
)

// Options carries the server's collaborators, constructed by the entry point.
type Options struct {
	DB           *db.DB
	Classrooms   *config.ClassroomsHolder
	LectureCache *cache.TTLCache
	LectureTTL   time.Duration
	DayViews     *cache.DayViewCache
	AdminToken   string
	WriteRate    float64
	WriteBurst   int
	Logger       zerolog.Logger
}

type Server struct {
	db         *db.DB
	classrooms *config.ClassroomsHolder
	lectures   cachedLectureSource
	dayViews   *cache.DayViewCache
	adminToken string
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

func New(opts Options) *Server {
	s := &Server{
		db:         opts.DB,
		classrooms: opts.Classrooms,
		lectures: cachedLectureSource{
			db:    opts.DB,
			cache: opts.LectureCache,
			ttl:   opts.LectureTTL,
		},
		dayViews:   opts.DayViews,
		adminToken: opts.AdminToken,
		logger:     opts.Logger,
	}
	if opts.WriteRate > 0 {
		burst := opts.WriteBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.WriteRate), burst)
	}
	return s
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "db not ready")
			return
		}
		c.String(http.StatusOK, "ready")
	})

	api := r.Group("/api/v1")
	{
		api.GET("/grid", s.handleGetGrid)
		api.GET("/comments", s.handleListComments)
		api.GET("/lectures", s.handleGetLectures)
		api.GET("/day-schedule", s.handleDaySchedule)
		api.GET("/classrooms", s.handleClassrooms)
	}

	admin := api.Group("", s.requireAdmin(), s.writeLimit())
	{
		admin.PUT("/grid", s.handlePutGrid)
		admin.POST("/comments", s.handleUpsertComment)
		admin.DELETE("/comments", s.handleDeleteComment)
		admin.GET("/export/audit", s.handleExportAudit)
	}

	return r
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func abortError(c *gin.Context, err error) {
	var status int
	var label string
	switch {
	case errors.Is(err, apperr.ErrInvalidDate):
		status, label = http.StatusBadRequest, "invalid date"
	case errors.Is(err, apperr.ErrValidation):
		status, label = http.StatusBadRequest, "validation failed"
	case errors.Is(err, apperr.ErrNotFound):
		status, label = http.StatusNotFound, "not found"
	default:
		status, label = http.StatusInternalServerError, "internal error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: label, Details: err.Error()})
}

func (s *Server) handleClassrooms(c *gin.Context) {
	var names []string
	if cfg := s.classrooms.Load(); cfg != nil {
		names = cfg.ActiveNames()
	}
	c.JSON(http.StatusOK, gin.H{
		"classrooms":           names,
		"regular_class_groups": model.RegularClassGroups,
		"nursing_class_groups": model.NursingClassGroups,
		"regular_time_slots":   model.RegularTimeSlots,
		"nursing_time_slots":   model.NursingTimeSlots,
		"special_time_slots":   model.SpecialTimeSlots,
	})
}
