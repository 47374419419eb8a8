package domain

// Change describes one top-level key whose value changed between two snapshots.
type Change struct {
	// Previous is the old value. It is meaningless when Added is true.
	Previous any `json:"previous"`
	Current  any `json:"current"`
	// Added is true when the key was absent from the previous snapshot
	// (including the very first snapshot).
	Added bool `json:"added,omitempty"`
}

// DiffRecord maps a key of the current snapshot to its change.
// Keys removed since the previous snapshot never appear.
type DiffRecord map[string]Change

// IsEmpty checks if the diff contains any change.
func (d DiffRecord) IsEmpty() bool {
	return len(d) == 0
}
