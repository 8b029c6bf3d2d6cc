package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"classboard/internal/apperr"
	"classboard/internal/dateutil"
	"classboard/internal/metrics"
	"classboard/internal/model"
)

// CommentRequest is the body of POST /api/v1/comments.
type CommentRequest struct {
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	ClassGroup string `json:"class_group"`
	Classroom  string `json:"classroom"`
	Comment    string `json:"comment"`
}

// handleListComments returns all comments for a date.
// GET /api/v1/comments?date=YYYY-MM-DD
func (s *Server) handleListComments(c *gin.Context) {
	metrics.IncHTTP("comments_list")

	key, err := s.dateParam(c)
	if err != nil {
		abortError(c, err)
		return
	}

	comments, err := s.db.ListComments(c.Request.Context(), key)
	if err != nil {
		abortError(c, err)
		return
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// handleUpsertComment creates or updates the comment for a cell. An empty
// comment deletes the existing one.
// POST /api/v1/comments
func (s *Server) handleUpsertComment(c *gin.Context) {
	metrics.IncHTTP("comments_upsert")

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, fmt.Errorf("%w: invalid JSON body: %v", apperr.ErrValidation, err))
		return
	}
	if req.Date == "" || req.TimeSlot == "" || req.ClassGroup == "" {
		abortError(c, fmt.Errorf("%w: date, time_slot and class_group are required", apperr.ErrValidation))
		return
	}
	// An empty comment routes to deletion, which never reads the classroom.
	if strings.TrimSpace(req.Comment) != "" && req.Classroom == "" {
		abortError(c, fmt.Errorf("%w: classroom is required", apperr.ErrValidation))
		return
	}

	key, err := dateutil.Normalize(req.Date)
	if err != nil {
		abortError(c, err)
		return
	}
	slot := model.TimeSlot(req.TimeSlot)
	group := model.ClassGroup(req.ClassGroup)
	if !model.IsValidTimeSlot(slot) {
		abortError(c, fmt.Errorf("%w: unknown time slot %q", apperr.ErrValidation, req.TimeSlot))
		return
	}
	if !model.IsValidClassGroup(group) {
		abortError(c, fmt.Errorf("%w: unknown class group %q", apperr.ErrValidation, req.ClassGroup))
		return
	}

	err = s.db.UpsertComment(c.Request.Context(), model.Comment{
		Date:       key,
		TimeSlot:   slot,
		ClassGroup: group,
		Classroom:  req.Classroom,
		Comment:    req.Comment,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	op := "upsert"
	if strings.TrimSpace(req.Comment) == "" {
		op = "delete"
	}
	metrics.IncCommentWrite(op)
	s.db.RecordAudit(c.Request.Context(), "admin", "comment_"+op,
		key, fmt.Sprintf("%s/%s", slot, group))
	s.dayViews.Invalidate(c.Request.Context(), key)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleDeleteComment removes the comment for a cell.
// DELETE /api/v1/comments?date=&time_slot=&class_group=
func (s *Server) handleDeleteComment(c *gin.Context) {
	metrics.IncHTTP("comments_delete")

	dateStr := c.Query("date")
	slotStr := c.Query("time_slot")
	groupStr := c.Query("class_group")
	if dateStr == "" || slotStr == "" || groupStr == "" {
		abortError(c, fmt.Errorf("%w: date, time_slot and class_group are required", apperr.ErrValidation))
		return
	}

	key, err := dateutil.Normalize(dateStr)
	if err != nil {
		abortError(c, err)
		return
	}

	err = s.db.DeleteComment(c.Request.Context(), key, model.TimeSlot(slotStr), model.ClassGroup(groupStr))
	if err != nil {
		abortError(c, err)
		return
	}

	metrics.IncCommentWrite("delete")
	s.db.RecordAudit(c.Request.Context(), "admin", "comment_delete",
		key, fmt.Sprintf("%s/%s", slotStr, groupStr))
	s.dayViews.Invalidate(c.Request.Context(), key)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
