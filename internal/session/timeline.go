package session

import (
	"fmt"
	"sort"
)

// Timeline is the ordered, deduplicated set of known ledger dates plus the
// current position. It only ever grows one date at a time (forward or
// backward navigation, or an explicit jump) and shrinks only through Reset.
// The date list stays strictly ascending with no duplicates.
type Timeline struct {
	dates   []string
	current int
}

// NewTimeline builds a timeline from the given dates, sorted and
// deduplicated, with the position on the most recent date.
func NewTimeline(dates []string) *Timeline {
	t := &Timeline{}
	for _, d := range dates {
		t.Insert(d)
	}
	t.current = len(t.dates) - 1
	if t.current < 0 {
		t.current = 0
	}
	return t
}

// Len returns the number of known dates.
func (t *Timeline) Len() int {
	return len(t.dates)
}

// Index returns the current position.
func (t *Timeline) Index() int {
	return t.current
}

// Dates returns a copy of the date list.
func (t *Timeline) Dates() []string {
	out := make([]string, len(t.dates))
	copy(out, t.dates)
	return out
}

// Current returns the date at the current position, or "" when empty.
func (t *Timeline) Current() string {
	if len(t.dates) == 0 {
		return ""
	}
	return t.dates[t.current]
}

// First returns the earliest known date, or "" when empty.
func (t *Timeline) First() string {
	if len(t.dates) == 0 {
		return ""
	}
	return t.dates[0]
}

// Last returns the latest known date, or "" when empty.
func (t *Timeline) Last() string {
	if len(t.dates) == 0 {
		return ""
	}
	return t.dates[len(t.dates)-1]
}

// At returns the date at the given position.
func (t *Timeline) At(i int) (string, error) {
	if i < 0 || i >= len(t.dates) {
		return "", fmt.Errorf("timeline index %d out of range [0,%d)", i, len(t.dates))
	}
	return t.dates[i], nil
}

// Insert adds a date in sorted position if absent and returns its index.
// The current position keeps pointing at the same date it pointed at before.
func (t *Timeline) Insert(date string) int {
	i := sort.SearchStrings(t.dates, date)
	if i < len(t.dates) && t.dates[i] == date {
		return i
	}
	t.dates = append(t.dates, "")
	copy(t.dates[i+1:], t.dates[i:])
	t.dates[i] = date
	if len(t.dates) > 1 && i <= t.current {
		t.current++
	}
	return i
}

// MoveTo repositions the pointer.
func (t *Timeline) MoveTo(i int) error {
	if i < 0 || i >= len(t.dates) {
		return fmt.Errorf("timeline index %d out of range [0,%d)", i, len(t.dates))
	}
	t.current = i
	return nil
}

// Predecessor returns the date immediately before position i in the set,
// or "" when i is the earliest.
func (t *Timeline) Predecessor(i int) string {
	if i <= 0 || i > len(t.dates) {
		return ""
	}
	return t.dates[i-1]
}

// Reset collapses the timeline to the single given date.
func (t *Timeline) Reset(date string) {
	t.dates = []string{date}
	t.current = 0
}

// Window returns the start index and the slice of up to max dates the UI
// shows as tabs around the current position.
func (t *Timeline) Window(max int) (int, []string) {
	total := len(t.dates)
	if total <= max {
		return 0, t.Dates()
	}

	var start int
	switch {
	case t.current == 0:
		start = 0
	case t.current == total-1:
		start = total - max
	default:
		start = t.current - (max - 1)
		if start < 0 {
			start = 0
		}
	}
	end := start + max
	if end > total {
		end = total
		start = end - max
	}

	window := make([]string, end-start)
	copy(window, t.dates[start:end])
	return start, window
}
