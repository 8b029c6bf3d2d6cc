package db

import (
	"context"
	"fmt"

	"classboard/internal/apperr"
	"classboard/internal/model"
)

// GetAssignments returns the full grid for a date. A date with no rows
// yields the empty grid, not an error. Rows whose time slot is outside the
// vocabulary are dropped with a warning; the read path tolerates dirty data.
func (db *DB) GetAssignments(ctx context.Context, date string) (model.DailyGrid, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT time_slot, class_group, classroom
		FROM classroom_assignments
		WHERE date = ?
		ORDER BY time_slot, class_group`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query assignments for %s: %v", apperr.ErrPersistence, date, err)
	}
	defer rows.Close()

	grid := model.EmptyGrid()
	for rows.Next() {
		var slot, group, classroom string
		if err := rows.Scan(&slot, &group, &classroom); err != nil {
			return nil, fmt.Errorf("%w: scan assignment: %v", apperr.ErrPersistence, err)
		}
		if !model.IsValidTimeSlot(model.TimeSlot(slot)) {
			db.logger.Warn().Str("date", date).Str("time_slot", slot).
				Msg("dropping assignment with unknown time slot")
			continue
		}
		grid[model.TimeSlot(slot)][model.ClassGroup(group)] = classroom
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate assignments: %v", apperr.ErrPersistence, err)
	}
	return grid, nil
}

// ReplaceAssignments replaces all rows for a date with the given grid in a
// single transaction. Cells whose classroom is empty or the unassigned
// sentinel produce no row. Slots outside the vocabulary are skipped with a
// warning, matching the read path.
func (db *DB) ReplaceAssignments(ctx context.Context, date string, grid model.DailyGrid) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin replace for %s: %v", apperr.ErrPersistence, date, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM classroom_assignments WHERE date = ?", date,
	); err != nil {
		return fmt.Errorf("%w: delete assignments for %s: %v", apperr.ErrPersistence, date, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classroom_assignments (date, time_slot, class_group, classroom)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare insert for %s: %v", apperr.ErrPersistence, date, err)
	}
	defer stmt.Close()

	for _, slot := range model.ValidTimeSlots {
		for _, group := range grid.SortedGroups(slot) {
			classroom := grid[slot][group]
			if !model.IsAssigned(classroom) {
				continue
			}
			if _, err := stmt.ExecContext(ctx, date, string(slot), string(group), classroom); err != nil {
				return fmt.Errorf("%w: insert cell %s/%s for %s: %v",
					apperr.ErrPersistence, slot, group, date, err)
			}
		}
	}

	for slot := range grid {
		if !model.IsValidTimeSlot(slot) {
			db.logger.Warn().Str("date", date).Str("time_slot", string(slot)).
				Msg("skipping unknown time slot on save")
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit replace for %s: %v", apperr.ErrPersistence, date, err)
	}
	return nil
}
