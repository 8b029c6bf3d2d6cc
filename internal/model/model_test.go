package model

import "testing"

func TestTrackSlots(t *testing.T) {
	tests := []struct {
		group    ClassGroup
		wantLen  int
		contains TimeSlot
		excludes TimeSlot
	}{
		{"1-A", 8, Lunch, Period5},
		{"3-B", 8, Period4, Period6},
		{"1-N", 5, SlotRetest, Lunch},
		{"3-N", 5, Period2, Period3},
	}

	for _, tt := range tests {
		t.Run(string(tt.group), func(t *testing.T) {
			slots := TrackSlots(tt.group)
			if len(slots) != tt.wantLen {
				t.Fatalf("TrackSlots(%s): got %d slots, want %d", tt.group, len(slots), tt.wantLen)
			}
			if !containsSlot(slots, tt.contains) {
				t.Errorf("TrackSlots(%s): missing %s", tt.group, tt.contains)
			}
			if containsSlot(slots, tt.excludes) {
				t.Errorf("TrackSlots(%s): should not contain %s", tt.group, tt.excludes)
			}
		})
	}

	if TrackSlots("4-Z") != nil {
		t.Error("TrackSlots for unknown group should be nil")
	}
}

func containsSlot(slots []TimeSlot, s TimeSlot) bool {
	for _, v := range slots {
		if v == s {
			return true
		}
	}
	return false
}

func TestIsValidClassGroup(t *testing.T) {
	for _, g := range AllClassGroups() {
		if !IsValidClassGroup(g) {
			t.Errorf("%s should be valid", g)
		}
	}
	for _, g := range []ClassGroup{"", "1-C", "4-A", "N-1"} {
		if IsValidClassGroup(g) {
			t.Errorf("%s should be invalid", g)
		}
	}
}

func TestIsSpecialTimeSlot(t *testing.T) {
	for _, s := range SpecialTimeSlots {
		if !IsSpecialTimeSlot(s) {
			t.Errorf("%s should be special", s)
		}
	}
	// Lunch is an ordinary slot: the bulk apply fills it.
	if IsSpecialTimeSlot(Lunch) {
		t.Error("lunch should not be special")
	}
	if IsSpecialTimeSlot(Period1) {
		t.Error("1限目 should not be special")
	}
}

func TestIsAssigned(t *testing.T) {
	tests := []struct {
		classroom string
		want      bool
	}{
		{"1F実習室", true},
		{"---", false},
		{"", false},
		{"   ", false},
		{" --- ", false},
	}
	for _, tt := range tests {
		if got := IsAssigned(tt.classroom); got != tt.want {
			t.Errorf("IsAssigned(%q) = %v, want %v", tt.classroom, got, tt.want)
		}
	}
}

func TestEmptyGrid(t *testing.T) {
	g := EmptyGrid()
	if len(g) != len(ValidTimeSlots) {
		t.Fatalf("empty grid has %d slots, want %d", len(g), len(ValidTimeSlots))
	}
	for _, slot := range ValidTimeSlots {
		groups, ok := g[slot]
		if !ok {
			t.Errorf("slot %s missing from empty grid", slot)
		}
		if len(groups) != 0 {
			t.Errorf("slot %s not empty", slot)
		}
	}
}

func TestGridCloneIsDeep(t *testing.T) {
	g := EmptyGrid()
	g.Set(Period1, "1-A", "4F大教室")

	c := g.Clone()
	c.Set(Period1, "1-A", "5F大教室")
	c.Set(Period2, "1-B", "3F小教室")

	if room, _ := g.Classroom(Period1, "1-A"); room != "4F大教室" {
		t.Errorf("clone mutation leaked into original: %q", room)
	}
	if _, ok := g.Classroom(Period2, "1-B"); ok {
		t.Error("clone insert leaked into original")
	}
}

func TestSortedGroups(t *testing.T) {
	g := EmptyGrid()
	g.Set(Period1, "2-B", "x")
	g.Set(Period1, "1-A", "y")
	g.Set(Period1, "1-N", "z")

	got := g.SortedGroups(Period1)
	want := []ClassGroup{"1-A", "1-N", "2-B"}
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
