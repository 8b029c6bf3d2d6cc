package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"classboard/internal/apperr"
	"classboard/internal/dateutil"
	"classboard/internal/model"
)

// lectureColumns maps each class group to its compound column pair in the
// wide legacy table. The order matches the tuple order of the result.
var lectureColumns = []struct {
	Group   model.ClassGroup
	Lecture string
	Teacher string
}{
	{"1-A", "c1a_lecture", "c1a_teacher"},
	{"1-B", "c1b_lecture", "c1b_teacher"},
	{"2-A", "c2a_lecture", "c2a_teacher"},
	{"2-B", "c2b_lecture", "c2b_teacher"},
	{"3-A", "c3a_lecture", "c3a_teacher"},
	{"3-B", "c3b_lecture", "c3b_teacher"},
	{"1-N", "c1n_lecture", "c1n_teacher"},
	{"2-N", "c2n_lecture", "c2n_teacher"},
	{"3-N", "c3n_lecture", "c3n_teacher"},
}

// periodLabels translates the legacy period column to slot labels. Numeric
// values are the current convention; the bare labels survive from older rows.
var periodLabels = map[string]model.TimeSlot{
	"1": model.Period1,
	"2": model.Period2,
	"3": model.Period3,
	"4": model.Period4,
	"5": model.Period5,
	"6": model.Period6,
	"7": model.SlotSelfStudy,
	"8": model.SlotMakeup,
	"9": model.SlotRetest,

	string(model.SlotSelfStudy): model.SlotSelfStudy,
	string(model.SlotMakeup):    model.SlotMakeup,
	string(model.SlotRetest):    model.SlotRetest,
}

// FetchLectures returns lecture/teacher tuples for a date from the legacy
// schedule table. Historical rows may be keyed by either YYYY-MM-DD or
// YYYY/MM/DD; the canonical form is tried first, then the slash form, before
// concluding there is no data. One tuple is emitted per (period, group) pair
// found in a source row whether or not a lecture is present; absent lectures
// carry nil fields.
func (db *DB) FetchLectures(ctx context.Context, date string) ([]model.LectureInfo, error) {
	lectures, err := db.queryLectures(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(lectures) == 0 && strings.Contains(date, "-") {
		lectures, err = db.queryLectures(ctx, dateutil.SlashKey(date))
		if err != nil {
			return nil, err
		}
	}
	return lectures, nil
}

func (db *DB) queryLectures(ctx context.Context, dateKey string) ([]model.LectureInfo, error) {
	cols := make([]string, 0, 1+2*len(lectureColumns))
	cols = append(cols, "period")
	for _, lc := range lectureColumns {
		cols = append(cols, lc.Lecture, lc.Teacher)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM lecture_schedule WHERE date = ? ORDER BY period",
		strings.Join(cols, ", "),
	)
	rows, err := db.QueryContext(ctx, query, dateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: query lectures for %s: %v", apperr.ErrPersistence, dateKey, err)
	}
	defer rows.Close()

	var result []model.LectureInfo
	for rows.Next() {
		var period string
		values := make([]sql.NullString, 2*len(lectureColumns))
		dest := make([]any, 0, 1+len(values))
		dest = append(dest, &period)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan lecture row: %v", apperr.ErrPersistence, err)
		}

		slot := model.TimeSlot(period)
		if mapped, ok := periodLabels[period]; ok {
			slot = mapped
		}

		for i, lc := range lectureColumns {
			result = append(result, model.LectureInfo{
				TimeSlot:    slot,
				ClassGroup:  lc.Group,
				LectureName: nullable(values[2*i]),
				TeacherName: nullable(values[2*i+1]),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate lectures: %v", apperr.ErrPersistence, err)
	}
	return result, nil
}

func nullable(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}
