package ports

// Observer receives the signals of one subscription.
// After OnError or OnComplete no further signal is delivered.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// Subscription is the teardown handle of a live subscription.
// Unsubscribe must be safe to call more than once.
type Subscription interface {
	Unsubscribe()
}

// Observable is a stream of values of type T.
// Subscribe may deliver signals synchronously, before it returns.
type Observable[T any] interface {
	Subscribe(observer Observer[T]) Subscription
}
