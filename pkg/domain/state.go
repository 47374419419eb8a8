package domain

import "maps"

// Snapshot is one state store emission, treated as an opaque string-keyed mapping.
type Snapshot map[string]any

// Clone returns a shallow copy. Nested maps and slices are shared.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}
