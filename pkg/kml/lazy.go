package kml

// lazy is a single cache slot for a derived value.
//
// The first get runs compute; every later get returns the stored result,
// including a stored error. Elements are read from one goroutine at a time,
// so the slot has no locking.
type lazy[T any] struct {
	done  bool
	value T
	found bool
	err   error
}

func (l *lazy[T]) get(compute func() (T, bool, error)) (T, bool, error) {
	if !l.done {
		l.value, l.found, l.err = compute()
		l.done = true
	}
	return l.value, l.found, l.err
}
