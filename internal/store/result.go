package store

// Result is the pending outcome of an asynchronous store operation.
type Result[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Pending is a Result that carries no value.
type Pending = Result[struct{}]

func newResult[T any]() *Result[T] {
	return &Result[T]{done: make(chan struct{})}
}

// run executes fn on its own goroutine and returns its pending result.
func run[T any](fn func() (T, error)) *Result[T] {
	r := newResult[T]()
	go func() {
		v, err := fn()
		r.value = v
		r.err = err
		close(r.done)
	}()
	return r
}

// Wait blocks until the operation settles and returns its outcome.
func (r *Result[T]) Wait() (T, error) {
	<-r.done
	return r.value, r.err
}

// Err blocks until the operation settles and returns its error.
func (r *Result[T]) Err() error {
	<-r.done
	return r.err
}

// Done is closed once the operation settles.
func (r *Result[T]) Done() <-chan struct{} {
	return r.done
}
