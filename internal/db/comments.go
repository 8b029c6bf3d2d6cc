package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"classboard/internal/apperr"
	"classboard/internal/model"
)

// ListComments returns all cell comments for a date.
func (db *DB) ListComments(ctx context.Context, date string) ([]model.Comment, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, time_slot, class_group, classroom, comment, created_at, updated_at
		FROM classroom_comments
		WHERE date = ?
		ORDER BY time_slot, class_group`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query comments for %s: %v", apperr.ErrPersistence, date, err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.Date, &c.TimeSlot, &c.ClassGroup, &c.Classroom,
			&c.Comment, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan comment: %v", apperr.ErrPersistence, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate comments: %v", apperr.ErrPersistence, err)
	}
	return comments, nil
}

// UpsertComment inserts or updates the comment for a cell, keyed by
// (date, time_slot, class_group). An empty or whitespace-only comment routes
// to deletion: the admin workflow treats clearing the text as removing the
// annotation, and an empty row is never persisted. Deleting a comment that
// does not exist via this path is a no-op.
func (db *DB) UpsertComment(ctx context.Context, c model.Comment) error {
	if strings.TrimSpace(c.Comment) == "" {
		err := db.DeleteComment(ctx, c.Date, c.TimeSlot, c.ClassGroup)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return nil
	}

	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO classroom_comments (
			date, time_slot, class_group, classroom, comment, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, time_slot, class_group) DO UPDATE SET
			comment = excluded.comment,
			classroom = excluded.classroom,
			updated_at = excluded.updated_at`,
		c.Date, string(c.TimeSlot), string(c.ClassGroup), c.Classroom, c.Comment, now, now,
	)
	if err != nil {
		return fmt.Errorf("%w: upsert comment %s/%s/%s: %v",
			apperr.ErrPersistence, c.Date, c.TimeSlot, c.ClassGroup, err)
	}
	return nil
}

// DeleteComment removes the comment for a cell. Returns ErrNotFound when no
// row matched.
func (db *DB) DeleteComment(ctx context.Context, date string, slot model.TimeSlot, group model.ClassGroup) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM classroom_comments
		WHERE date = ? AND time_slot = ? AND class_group = ?`,
		date, string(slot), string(group),
	)
	if err != nil {
		return fmt.Errorf("%w: delete comment %s/%s/%s: %v",
			apperr.ErrPersistence, date, slot, group, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: delete comment rows affected: %v", apperr.ErrPersistence, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: comment %s/%s/%s", apperr.ErrNotFound, date, slot, group)
	}
	return nil
}
