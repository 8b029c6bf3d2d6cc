// Package board reconciles the three per-date collections of the classroom
// board — assignments, comments and lecture info — into one render-ready
// projection, and runs the save protocol that keeps the grid consistent with
// the store. The collections stay separately keyed at all times; they are
// joined only in View.
package board

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"classboard/internal/apperr"
	"classboard/internal/dateutil"
	"classboard/internal/metrics"
	"classboard/internal/model"
)

// GridStore reads and writes the assignment collection for a date.
type GridStore interface {
	GetAssignments(ctx context.Context, date string) (model.DailyGrid, error)
	ReplaceAssignments(ctx context.Context, date string, grid model.DailyGrid) error
}

// CommentStore reads and writes cell comments.
type CommentStore interface {
	ListComments(ctx context.Context, date string) ([]model.Comment, error)
	UpsertComment(ctx context.Context, c model.Comment) error
	DeleteComment(ctx context.Context, date string, slot model.TimeSlot, group model.ClassGroup) error
}

// LectureSource reads the supplementary lecture/teacher info for a date.
type LectureSource interface {
	FetchLectures(ctx context.Context, date string) ([]model.LectureInfo, error)
}

// CellView is the merged projection of one cell. It is the single source of
// truth the presentation layer reads from.
type CellView struct {
	TimeSlot    model.TimeSlot   `json:"time_slot"`
	ClassGroup  model.ClassGroup `json:"class_group"`
	Classroom   string           `json:"classroom"`
	LectureName *string          `json:"lecture_name"`
	TeacherName *string          `json:"teacher_name"`
	Comment     string           `json:"comment,omitempty"`
	HasComment  bool             `json:"has_comment"`
}

// Board holds the in-memory state of one date's grid during an editing
// session. Cell edits stay local until Commit; comment edits persist
// immediately.
type Board struct {
	date     string
	grid     model.DailyGrid
	comments []model.Comment
	lectures []model.LectureInfo

	grids        GridStore
	commentStore CommentStore
	logger       *zerolog.Logger
}

// Load fetches the grid, comments and lectures for a date concurrently.
// A grid fetch failure is fatal; comment and lecture failures each degrade
// to an empty collection with a warning, independently.
func Load(ctx context.Context, date string, grids GridStore, comments CommentStore, lectures LectureSource, logger *zerolog.Logger) (*Board, error) {
	key, err := dateutil.Normalize(date)
	if err != nil {
		return nil, err
	}

	var (
		wg      sync.WaitGroup
		grid    model.DailyGrid
		gridErr error
		cs      []model.Comment
		ls      []model.LectureInfo
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		grid, gridErr = grids.GetAssignments(ctx, key)
	}()
	go func() {
		defer wg.Done()
		var err error
		cs, err = comments.ListComments(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Str("date", key).Msg("comment fetch degraded to empty")
			metrics.IncDegradedFetch("comments")
			cs = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		ls, err = lectures.FetchLectures(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Str("date", key).Msg("lecture fetch degraded to empty")
			metrics.IncDegradedFetch("lectures")
			ls = nil
		}
	}()
	wg.Wait()

	if gridErr != nil {
		return nil, fmt.Errorf("load grid for %s: %w", key, gridErr)
	}

	return &Board{
		date:         key,
		grid:         grid,
		comments:     cs,
		lectures:     ls,
		grids:        grids,
		commentStore: comments,
		logger:       logger,
	}, nil
}

// Date returns the canonical date key of this board.
func (b *Board) Date() string { return b.date }

// Grid returns the in-memory grid.
func (b *Board) Grid() model.DailyGrid { return b.grid }

// Comments returns the in-memory comment collection.
func (b *Board) Comments() []model.Comment { return b.comments }

// Lectures returns the lecture collection loaded for this date.
func (b *Board) Lectures() []model.LectureInfo { return b.lectures }

// View projects one cell: classroom from the grid, lecture info and comment
// by exact (time_slot, class_group) match. First match wins for duplicates.
func (b *Board) View(slot model.TimeSlot, group model.ClassGroup) CellView {
	view := CellView{
		TimeSlot:   slot,
		ClassGroup: group,
		Classroom:  model.Unassigned,
	}

	if room, ok := b.grid.Classroom(slot, group); ok && model.IsAssigned(room) {
		view.Classroom = room
	}

	for i := range b.lectures {
		l := &b.lectures[i]
		if l.TimeSlot == slot && l.ClassGroup == group {
			view.LectureName = l.LectureName
			view.TeacherName = l.TeacherName
			break
		}
	}

	for i := range b.comments {
		c := &b.comments[i]
		if c.TimeSlot == slot && c.ClassGroup == group {
			view.Comment = c.Comment
			view.HasComment = true
			break
		}
	}

	return view
}

// ViewAll projects every valid cell, regular track groups first, each in its
// track's slot order.
func (b *Board) ViewAll() []CellView {
	var views []CellView
	for _, group := range model.AllClassGroups() {
		for _, slot := range model.TrackSlots(group) {
			views = append(views, b.View(slot, group))
		}
	}
	return views
}

// SetCell records a classroom for one cell in the local grid. An empty or
// sentinel classroom marks the cell unassigned; Commit persists that as
// absence of a row.
func (b *Board) SetCell(slot model.TimeSlot, group model.ClassGroup, classroom string) error {
	slots := model.TrackSlots(group)
	if slots == nil {
		return fmt.Errorf("%w: unknown class group %q", apperr.ErrValidation, group)
	}
	valid := false
	for _, s := range slots {
		if s == slot {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: time slot %q is not in %s's track", apperr.ErrValidation, slot, group)
	}

	b.grid.Set(slot, group, classroom)
	return nil
}

// SetAll applies one classroom across every ordinary time slot of the
// group's track. Special slots (self-study, makeup, retest) need manual
// choices and are left untouched.
func (b *Board) SetAll(group model.ClassGroup, classroom string) error {
	slots := model.TrackSlots(group)
	if slots == nil {
		return fmt.Errorf("%w: unknown class group %q", apperr.ErrValidation, group)
	}
	for _, slot := range slots {
		if model.IsSpecialTimeSlot(slot) {
			continue
		}
		b.grid.Set(slot, group, classroom)
	}
	return nil
}

// Commit persists the local grid with full replace semantics. This is the
// only point at which cell edits become durable.
func (b *Board) Commit(ctx context.Context) error {
	if err := b.grids.ReplaceAssignments(ctx, b.date, b.grid); err != nil {
		metrics.IncGridCommit("error")
		return err
	}
	metrics.IncGridCommit("ok")
	return nil
}

// SetComment upserts the comment for a cell, updating the in-memory
// collection optimistically and rolling it back if the store write fails.
// Empty text clears the comment.
func (b *Board) SetComment(ctx context.Context, slot model.TimeSlot, group model.ClassGroup, classroom, text string) error {
	if !model.IsValidClassGroup(group) || !model.IsValidTimeSlot(slot) {
		return fmt.Errorf("%w: comment target %q/%q", apperr.ErrValidation, slot, group)
	}

	snapshot := b.comments
	b.comments = applyComment(b.comments, b.date, slot, group, classroom, text)

	err := b.commentStore.UpsertComment(ctx, model.Comment{
		Date:       b.date,
		TimeSlot:   slot,
		ClassGroup: group,
		Classroom:  classroom,
		Comment:    text,
	})
	if err != nil {
		b.comments = snapshot
		return err
	}
	metrics.IncCommentWrite("upsert")
	return nil
}

// ClearComment deletes the comment for a cell, optimistically removing it
// from the in-memory collection and restoring it if the delete fails.
func (b *Board) ClearComment(ctx context.Context, slot model.TimeSlot, group model.ClassGroup) error {
	snapshot := b.comments
	b.comments = applyComment(b.comments, b.date, slot, group, "", "")

	if err := b.commentStore.DeleteComment(ctx, b.date, slot, group); err != nil {
		b.comments = snapshot
		return err
	}
	metrics.IncCommentWrite("delete")
	return nil
}

// applyComment returns a new collection with the cell's comment replaced,
// added, or removed when text is empty.
func applyComment(comments []model.Comment, date string, slot model.TimeSlot, group model.ClassGroup, classroom, text string) []model.Comment {
	now := time.Now()
	out := make([]model.Comment, 0, len(comments)+1)
	for _, c := range comments {
		if c.TimeSlot == slot && c.ClassGroup == group {
			continue
		}
		out = append(out, c)
	}
	if strings.TrimSpace(text) != "" {
		out = append(out, model.Comment{
			Date:       date,
			TimeSlot:   slot,
			ClassGroup: group,
			Classroom:  classroom,
			Comment:    text,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return out
}
