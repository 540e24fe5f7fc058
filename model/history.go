package model

// historySize is how many recent hashes are kept for cycle detection
const historySize = 5

// History remembers the hashes of recent generations so that static
// boards and short cycles can be detected.
type History struct {
	hashes []string
}

// Update adds hash to the history and drops the oldest beyond historySize
func (h *History) Update(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether hash repeats one of the last three recorded
// states, i.e. the board is static or cycling with period 1..3.
// Needs at least three recorded states.
func (h *History) IsStagnant(hash string) bool {
	if len(h.hashes) < 3 {
		return false
	}
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == hash {
			return true
		}
	}
	return false
}

// Reset forgets every recorded state
func (h *History) Reset() {
	h.hashes = nil
}
