// file: models/availability.go
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	DaysPerWeek = 7
	SlotsPerDay = 30
)

// Day is a weekday label. Confirmed slots recur every week on the same label.
type Day string

const (
	Monday    Day = "mon"
	Tuesday   Day = "tue"
	Wednesday Day = "wed"
	Thursday  Day = "thu"
	Friday    Day = "fri"
	Saturday  Day = "sat"
	Sunday    Day = "sun"
)

// Days lists the labels in grid order.
var Days = [DaysPerWeek]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the grid row of d, or -1 for an unknown label.
func (d Day) Index() int {
	for i, x := range Days {
		if x == d {
			return i
		}
	}
	return -1
}

func (d Day) Valid() bool {
	return d.Index() >= 0
}

// Slot is one cell of the weekly grid.
type Slot struct {
	Day   Day
	Index int
}

// Key formats the slot as "<day>_<index>".
func (s Slot) Key() string {
	return string(s.Day) + "_" + strconv.Itoa(s.Index)
}

// SlotKeyError explains why a slot key was rejected.
type SlotKeyError struct {
	Key    string
	Reason string
}

func (e *SlotKeyError) Error() string {
	return fmt.Sprintf("invalid slot key %q: %s", e.Key, e.Reason)
}

// ParseSlotKey is the only way a client-supplied "<day>_<index>" becomes a Slot.
func ParseSlotKey(key string) (Slot, error) {
	day, idx, ok := strings.Cut(key, "_")
	if !ok || day == "" || idx == "" {
		return Slot{}, &SlotKeyError{Key: key, Reason: "expected <day>_<index>"}
	}
	d := Day(day)
	if !d.Valid() {
		return Slot{}, &SlotKeyError{Key: key, Reason: "unknown day " + strconv.Quote(day)}
	}
	// Atoi would accept "+3"; only plain digits are allowed.
	for _, r := range idx {
		if r < '0' || r > '9' {
			return Slot{}, &SlotKeyError{Key: key, Reason: "index is not an integer"}
		}
	}
	n, err := strconv.Atoi(idx)
	if err != nil {
		return Slot{}, &SlotKeyError{Key: key, Reason: "index is not an integer"}
	}
	if n < 0 || n >= SlotsPerDay {
		return Slot{}, &SlotKeyError{Key: key, Reason: fmt.Sprintf("index out of range [0,%d)", SlotsPerDay)}
	}
	return Slot{Day: d, Index: n}, nil
}

// ParseSlotKeys validates every key before returning any slot, and drops repeats.
func ParseSlotKeys(keys []string) ([]Slot, error) {
	seen := make(map[Slot]struct{}, len(keys))
	out := make([]Slot, 0, len(keys))
	for _, k := range keys {
		s, err := ParseSlotKey(k)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// SlotSet is a set of grid cells.
type SlotSet map[Slot]struct{}

func (s SlotSet) Add(slot Slot) {
	s[slot] = struct{}{}
}

func (s SlotSet) Has(slot Slot) bool {
	_, ok := s[slot]
	return ok
}

// DayFlags is one day of availability; true means free.
type DayFlags [SlotsPerDay]bool

// WeeklyAvailability maps a day to its flags. A missing day means nothing recorded.
type WeeklyAvailability map[Day]DayFlags

// Free reports whether the cell is marked available.
func (w WeeklyAvailability) Free(slot Slot) bool {
	flags, ok := w[slot.Day]
	if !ok || slot.Index < 0 || slot.Index >= SlotsPerDay {
		return false
	}
	return flags[slot.Index]
}

// Merge returns a copy of w where every day present in update replaces the stored day.
func (w WeeklyAvailability) Merge(update WeeklyAvailability) WeeklyAvailability {
	out := make(WeeklyAvailability, len(w)+len(update))
	for d, f := range w {
		out[d] = f
	}
	for d, f := range update {
		out[d] = f
	}
	return out
}

// ParseWeeklyAvailability decodes the stored JSON text, e.g. {"mon":[0,1,...]}.
// Empty text is an empty availability.
func ParseWeeklyAvailability(text string) (WeeklyAvailability, error) {
	if strings.TrimSpace(text) == "" {
		return WeeklyAvailability{}, nil
	}
	var raw map[string][]int
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("decode availability: %w", err)
	}
	return availabilityFromRaw(raw)
}

func availabilityFromRaw(raw map[string][]int) (WeeklyAvailability, error) {
	out := make(WeeklyAvailability, len(raw))
	for day, values := range raw {
		d := Day(day)
		if !d.Valid() {
			return nil, fmt.Errorf("availability: unknown day %q", day)
		}
		if len(values) != SlotsPerDay {
			return nil, fmt.Errorf("availability: day %s has %d slots, want %d", day, len(values), SlotsPerDay)
		}
		var flags DayFlags
		for i, v := range values {
			switch v {
			case 0:
			case 1:
				flags[i] = true
			default:
				return nil, fmt.Errorf("availability: day %s slot %d has value %d, want 0 or 1", day, i, v)
			}
		}
		out[d] = flags
	}
	return out, nil
}

// Raw converts w to the 0/1 form used on the wire and in storage.
func (w WeeklyAvailability) Raw() map[string][]int {
	raw := make(map[string][]int, len(w))
	for d, flags := range w {
		values := make([]int, SlotsPerDay)
		for i, free := range flags {
			if free {
				values[i] = 1
			}
		}
		raw[string(d)] = values
	}
	return raw
}

// Serialize encodes w for the users.schedule_json column.
func (w WeeklyAvailability) Serialize() (string, error) {
	b, err := json.Marshal(w.Raw())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (w WeeklyAvailability) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Raw())
}

func (w *WeeklyAvailability) UnmarshalJSON(b []byte) error {
	var raw map[string][]int
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := availabilityFromRaw(raw)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// OverlapGrid holds, per day and slot, how many team members are free.
type OverlapGrid [DaysPerWeek][SlotsPerDay]int

func (g *OverlapGrid) At(slot Slot) int {
	i := slot.Day.Index()
	if i < 0 || slot.Index < 0 || slot.Index >= SlotsPerDay {
		return 0
	}
	return g[i][slot.Index]
}

// ByDay keys the rows by day label for JSON clients.
func (g *OverlapGrid) ByDay() map[string][]int {
	out := make(map[string][]int, DaysPerWeek)
	for i, d := range Days {
		row := make([]int, SlotsPerDay)
		copy(row, g[i][:])
		out[string(d)] = row
	}
	return out
}
