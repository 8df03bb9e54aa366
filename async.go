package jwt

// Future is the result of a Sign or Verify running on its own goroutine.
// It resolves exactly once, to a value or to an error.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Await blocks until the computation finishes
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the computation is complete without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func run[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = fn()
	}()
	return f
}

// SignAsync runs Sign off the caller's goroutine
func SignAsync(claims Claims, key []byte, opts SignOptions) *Future[string] {
	return run(func() (string, error) {
		return Sign(claims, key, opts)
	})
}

// SignRawAsync runs SignRaw off the caller's goroutine
func SignRawAsync(payload []byte, key []byte, opts SignOptions) *Future[string] {
	return run(func() (string, error) {
		return SignRaw(payload, key, opts)
	})
}

// VerifyAsync runs Verify off the caller's goroutine
func VerifyAsync(token string, key []byte, opts VerifyOptions) *Future[Claims] {
	return run(func() (Claims, error) {
		return Verify(token, key, opts)
	})
}

// SignCallback runs Sign in the background and calls cb exactly once with
// either the token or the error.
func SignCallback(claims Claims, key []byte, opts SignOptions, cb func(string, error)) {
	go func() {
		cb(Sign(claims, key, opts))
	}()
}

// VerifyCallback runs Verify in the background and calls cb exactly once with
// either the claims or the error.
func VerifyCallback(token string, key []byte, opts VerifyOptions, cb func(Claims, error)) {
	go func() {
		cb(Verify(token, key, opts))
	}()
}
