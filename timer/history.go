package timer

// History is the bounded log of accepted inputs with a recall cursor. The
// cursor ranges over [0, Len()]; Len() means no entry is selected.
type History struct {
	entries []string
	cursor  int
	limit   int
}

// NewHistory returns an empty history holding at most limit entries.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = HistoryLimit
	}
	return &History{limit: limit}
}

// Record appends input unless it equals the newest entry, evicts the oldest
// entry past the limit and moves the cursor to the fresh-input position.
func (h *History) Record(input string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != input {
		h.entries = append(h.entries, input)
		if len(h.entries) > h.limit {
			h.entries = append(h.entries[:0:0], h.entries[len(h.entries)-h.limit:]...)
		}
	}
	h.cursor = len(h.entries)
}

// Previous moves the cursor towards older entries and returns the selected
// entry. It reports false, leaving the cursor alone, when already at the
// oldest entry or when the history is empty.
func (h *History) Previous() (string, bool) {
	if len(h.entries) == 0 || h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Next moves the cursor towards newer entries. Stepping past the newest entry
// selects the fresh-input position and returns "". It reports false when
// nothing moved.
func (h *History) Next() (string, bool) {
	n := len(h.entries)
	switch {
	case n == 0:
		return "", false
	case h.cursor < n-1:
		h.cursor++
		return h.entries[h.cursor], true
	case h.cursor == n-1:
		h.cursor = n
		return "", true
	default:
		return "", false
	}
}

// Entries returns a copy of the recorded inputs, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Cursor returns the current cursor position.
func (h *History) Cursor() int { return h.cursor }

// Len returns the number of recorded inputs.
func (h *History) Len() int { return len(h.entries) }
