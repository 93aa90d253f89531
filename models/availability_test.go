// file: models/availability_test.go
package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func flags(free ...int) []int {
	out := make([]int, SlotsPerDay)
	for _, i := range free {
		out[i] = 1
	}
	return out
}

func TestParseSlotKey(t *testing.T) {
	t.Run("accepts every cell", func(t *testing.T) {
		for _, d := range Days {
			for i := 0; i < SlotsPerDay; i++ {
				key := Slot{Day: d, Index: i}.Key()
				s, err := ParseSlotKey(key)
				if err != nil {
					t.Fatalf("ParseSlotKey(%q) unexpected error: %v", key, err)
				}
				if s.Day != d || s.Index != i {
					t.Fatalf("ParseSlotKey(%q) = %+v", key, s)
				}
			}
		}
	})

	bad := []string{
		"", "mon", "mon_", "_3", "monday_1", "MON_1", "mon_30", "mon_-1",
		"mon_+1", "mon_1.5", "mon_ 1", "mon_1_2", "xyz_0", "mon_abc",
	}
	for _, key := range bad {
		t.Run("rejects "+key, func(t *testing.T) {
			_, err := ParseSlotKey(key)
			var ke *SlotKeyError
			if !errors.As(err, &ke) {
				t.Fatalf("ParseSlotKey(%q) error = %v, want *SlotKeyError", key, err)
			}
			if ke.Key != key {
				t.Errorf("SlotKeyError.Key = %q, want %q", ke.Key, key)
			}
		})
	}
}

func TestParseSlotKeys(t *testing.T) {
	t.Run("dedups in order", func(t *testing.T) {
		slots, err := ParseSlotKeys([]string{"tue_3", "mon_0", "tue_3"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(slots) != 2 || slots[0].Key() != "tue_3" || slots[1].Key() != "mon_0" {
			t.Errorf("got %v", slots)
		}
	})

	t.Run("one bad key fails the batch", func(t *testing.T) {
		slots, err := ParseSlotKeys([]string{"mon_0", "mon_99", "tue_1"})
		if err == nil {
			t.Fatal("expected an error")
		}
		if slots != nil {
			t.Errorf("expected no slots, got %v", slots)
		}
		if !strings.Contains(err.Error(), "mon_99") {
			t.Errorf("error %q does not name the key", err)
		}
	})
}

func TestParseWeeklyAvailability(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		w, err := ParseWeeklyAvailability("  ")
		if err != nil || len(w) != 0 {
			t.Fatalf("got %v, %v", w, err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		raw, _ := json.Marshal(map[string][]int{"mon": flags(0, 29), "sun": flags()})
		w, err := ParseWeeklyAvailability(string(raw))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !w.Free(Slot{Monday, 0}) || !w.Free(Slot{Monday, 29}) || w.Free(Slot{Monday, 1}) {
			t.Errorf("monday flags wrong: %v", w[Monday])
		}
		if _, ok := w[Tuesday]; ok {
			t.Error("tuesday should be absent")
		}
		if w.Free(Slot{Tuesday, 0}) {
			t.Error("missing day must not be free")
		}
	})

	tests := []struct {
		name string
		text string
	}{
		{"not json", "{"},
		{"unknown day", `{"funday":` + mustJSON(flags()) + `}`},
		{"short day", `{"mon":[1,0,1]}`},
		{"value outside 0/1", `{"mon":` + mustJSON(append(flags()[:29], 2)) + `}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseWeeklyAvailability(tt.text); err == nil {
				t.Errorf("expected error for %s", tt.text)
			}
		})
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func TestWeeklyAvailabilityMerge(t *testing.T) {
	var monA, monB, tue DayFlags
	monA[0] = true
	monB[5] = true
	tue[1] = true

	stored := WeeklyAvailability{Monday: monA, Tuesday: tue}
	merged := stored.Merge(WeeklyAvailability{Monday: monB})

	if merged[Monday] != monB {
		t.Errorf("monday should be replaced, got %v", merged[Monday])
	}
	if merged[Tuesday] != tue {
		t.Errorf("tuesday should be kept, got %v", merged[Tuesday])
	}
	if stored[Monday] != monA {
		t.Error("Merge must not modify the receiver")
	}
}

func TestWeeklyAvailabilityRoundTrip(t *testing.T) {
	var mon DayFlags
	mon[7] = true
	text, err := WeeklyAvailability{Monday: mon}.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	back, err := ParseWeeklyAvailability(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if back[Monday] != mon || len(back) != 1 {
		t.Errorf("round trip lost data: %v", back)
	}
}

func TestOverlapGridByDay(t *testing.T) {
	var g OverlapGrid
	g[0][0] = 2
	g[6][29] = 1
	rows := g.ByDay()
	if len(rows) != DaysPerWeek {
		t.Fatalf("got %d rows", len(rows))
	}
	for _, d := range Days {
		if len(rows[string(d)]) != SlotsPerDay {
			t.Errorf("row %s has %d cells", d, len(rows[string(d)]))
		}
	}
	if rows["mon"][0] != 2 || rows["sun"][29] != 1 {
		t.Errorf("values misplaced: %v", rows)
	}
	if g.At(Slot{Sunday, 29}) != 1 || g.At(Slot{"bad", 0}) != 0 {
		t.Error("At returned wrong values")
	}
}
