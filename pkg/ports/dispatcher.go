package ports

// DispatchFunc submits an action and returns the store's result.
type DispatchFunc[A, R any] func(action A) R
