// Package model holds the closed vocabularies and record types of the
// classroom board. Time slots and class groups are fixed sets; nothing
// creates or destroys them at runtime.
package model

import (
	"sort"
	"strings"
	"time"
)

// TimeSlot is one of the fixed named periods of a school day.
type TimeSlot string

// ClassGroup is a cohort identifier, e.g. "1-A".
type ClassGroup string

const (
	Period1       TimeSlot = "1限目"
	Period2       TimeSlot = "2限目"
	Lunch         TimeSlot = "昼食"
	Period3       TimeSlot = "3限目"
	Period4       TimeSlot = "4限目"
	Period5       TimeSlot = "5限目"
	Period6       TimeSlot = "6限目"
	SlotSelfStudy TimeSlot = "自　習"
	SlotMakeup    TimeSlot = "補　習"
	SlotRetest    TimeSlot = "再試験"
)

// Unassigned is the sentinel shown for a cell without a classroom. It is a
// display value only; unassigned cells are persisted as absence of a row.
const Unassigned = "---"

// ValidTimeSlots matches the check constraint on the assignments table.
var ValidTimeSlots = []TimeSlot{
	Period1, Period2, Lunch, Period3, Period4, Period5, Period6,
	SlotSelfStudy, SlotMakeup, SlotRetest,
}

// RegularTimeSlots is the day layout of the regular track.
var RegularTimeSlots = []TimeSlot{
	Period1, Period2, Lunch, Period3, Period4,
	SlotSelfStudy, SlotMakeup, SlotRetest,
}

// NursingTimeSlots is the day layout of the nursing/evening track.
var NursingTimeSlots = []TimeSlot{
	Period1, Period2, SlotSelfStudy, SlotMakeup, SlotRetest,
}

// SpecialTimeSlots need independent manual classroom choices and are skipped
// by the bulk "apply to whole day" operation.
var SpecialTimeSlots = []TimeSlot{SlotSelfStudy, SlotMakeup, SlotRetest}

var (
	RegularClassGroups = []ClassGroup{"1-A", "1-B", "2-A", "2-B", "3-A", "3-B"}
	NursingClassGroups = []ClassGroup{"1-N", "2-N", "3-N"}
)

// AllClassGroups returns both tracks' groups, regular first.
func AllClassGroups() []ClassGroup {
	out := make([]ClassGroup, 0, len(RegularClassGroups)+len(NursingClassGroups))
	out = append(out, RegularClassGroups...)
	out = append(out, NursingClassGroups...)
	return out
}

func IsValidTimeSlot(s TimeSlot) bool {
	for _, v := range ValidTimeSlots {
		if v == s {
			return true
		}
	}
	return false
}

func IsSpecialTimeSlot(s TimeSlot) bool {
	for _, v := range SpecialTimeSlots {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidClassGroup(g ClassGroup) bool {
	return TrackSlots(g) != nil
}

// TrackSlots returns the time slots valid for g's track, or nil for an
// unknown group.
func TrackSlots(g ClassGroup) []TimeSlot {
	for _, v := range RegularClassGroups {
		if v == g {
			return RegularTimeSlots
		}
	}
	for _, v := range NursingClassGroups {
		if v == g {
			return NursingTimeSlots
		}
	}
	return nil
}

// IsAssigned reports whether a classroom value represents a real assignment
// rather than the unassigned sentinel.
func IsAssigned(classroom string) bool {
	trimmed := strings.TrimSpace(classroom)
	return trimmed != "" && trimmed != Unassigned
}

// DailyGrid is the full classroom-assignment matrix for one date: time slot
// to class group to classroom name. Every valid time slot is always present
// as a key; an absent group entry means "unassigned".
type DailyGrid map[TimeSlot]map[ClassGroup]string

// EmptyGrid returns a grid with every valid time slot mapped to an empty
// group map.
func EmptyGrid() DailyGrid {
	g := make(DailyGrid, len(ValidTimeSlots))
	for _, slot := range ValidTimeSlots {
		g[slot] = make(map[ClassGroup]string)
	}
	return g
}

// Classroom returns the assignment for a cell, if any.
func (g DailyGrid) Classroom(slot TimeSlot, group ClassGroup) (string, bool) {
	groups, ok := g[slot]
	if !ok {
		return "", false
	}
	room, ok := groups[group]
	return room, ok
}

// Set records a classroom for a cell, creating the slot map if needed.
func (g DailyGrid) Set(slot TimeSlot, group ClassGroup, classroom string) {
	groups, ok := g[slot]
	if !ok {
		groups = make(map[ClassGroup]string)
		g[slot] = groups
	}
	groups[group] = classroom
}

// Clone returns a deep copy of the grid.
func (g DailyGrid) Clone() DailyGrid {
	out := make(DailyGrid, len(g))
	for slot, groups := range g {
		m := make(map[ClassGroup]string, len(groups))
		for group, room := range groups {
			m[group] = room
		}
		out[slot] = m
	}
	return out
}

// SortedGroups returns the group keys of one slot in stable order.
func (g DailyGrid) SortedGroups(slot TimeSlot) []ClassGroup {
	groups := g[slot]
	keys := make([]ClassGroup, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Assignment is one persisted classroom-assignment row.
type Assignment struct {
	Date       string     `json:"date"`
	TimeSlot   TimeSlot   `json:"time_slot"`
	ClassGroup ClassGroup `json:"class_group"`
	Classroom  string     `json:"classroom"`
}

// Comment is a free-text annotation on a cell. At most one exists per
// (date, time_slot, class_group).
type Comment struct {
	ID         int64      `json:"id"`
	Date       string     `json:"date"`
	TimeSlot   TimeSlot   `json:"time_slot"`
	ClassGroup ClassGroup `json:"class_group"`
	Classroom  string     `json:"classroom"`
	Comment    string     `json:"comment"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LectureInfo is read-only lecture/teacher metadata for one cell, owned by
// the external scheduling source. Nil fields mean no lecture for that cell.
type LectureInfo struct {
	TimeSlot    TimeSlot   `json:"time_slot"`
	ClassGroup  ClassGroup `json:"class_group"`
	LectureName *string    `json:"lecture_name"`
	TeacherName *string    `json:"teacher_name"`
}
