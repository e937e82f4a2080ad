package market

// TapeState is a single point-in-time observation of both side prices for
// a market. Invariant (advisory, enforced by the quality filter):
// |UpPrice + DownPrice - 1| <= epsilon.
type TapeState struct {
	TimestampMs int64
	UpPrice     float64
	DownPrice   float64
	Key         Key
}

// HistoryEntry is one retained tape observation.
type HistoryEntry struct {
	TimestampMs int64
	UpPrice     float64
	DownPrice   float64
}

// History is a bounded, oldest-evicted ring of price observations for one
// market. Zero value is not usable; construct with NewHistory.
type History struct {
	entries  []HistoryEntry
	capacity int
	head     int // index of the oldest entry once full
	size     int
}

// NewHistory builds a History with the given capacity; a capacity <= 0
// defaults to 1000.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1000
	}
	return &History{entries: make([]HistoryEntry, capacity), capacity: capacity}
}

// Append records a new observation, evicting the oldest entry if full.
func (h *History) Append(e HistoryEntry) {
	if h.size < h.capacity {
		h.entries[(h.head+h.size)%h.capacity] = e
		h.size++
		return
	}
	h.entries[h.head] = e
	h.head = (h.head + 1) % h.capacity
}

// Len reports the number of retained entries.
func (h *History) Len() int { return h.size }

// At returns the i-th oldest retained entry (0 is the oldest).
func (h *History) At(i int) HistoryEntry {
	return h.entries[(h.head+i)%h.capacity]
}

// ForEach visits entries oldest-first. The callback must not mutate h.
func (h *History) ForEach(fn func(HistoryEntry)) {
	for i := 0; i < h.size; i++ {
		fn(h.At(i))
	}
}

// Nearest returns the entry whose timestamp is closest to targetMs, and
// whether any entry exists at all.
func (h *History) Nearest(targetMs int64) (HistoryEntry, bool) {
	if h.size == 0 {
		return HistoryEntry{}, false
	}
	best := h.At(0)
	bestDiff := abs64(best.TimestampMs - targetMs)
	for i := 1; i < h.size; i++ {
		e := h.At(i)
		d := abs64(e.TimestampMs - targetMs)
		if d < bestDiff {
			best, bestDiff = e, d
		}
	}
	return best, true
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
