package ports

import "github.com/aretw0/sonda/pkg/domain"

// Store is the state store contract: a stream of snapshots plus a dispatch entry point.
type Store[A, R any] interface {
	// State emits the current snapshot on subscribe and a new one after every change.
	State() Observable[domain.Snapshot]

	// Dispatch submits an action for processing and returns the store's result.
	Dispatch(action A) R
}
