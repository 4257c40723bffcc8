package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight is a typed singleflight.Group. Concurrent calls sharing a key
// run fn once and all receive its result.
type SingleFlight[T any] struct {
	group singleflight.Group
}

// Do reports shared=true when the result was produced for another caller.
// A panic in fn is re-raised in every waiting caller and the key is released.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	v, err, shared := g.group.Do(key, func() (any, error) {
		return fn()
	})
	out, _ := v.(T)
	return out, err, shared
}

// Forget drops an in-flight key so the next Do starts a fresh call.
func (g *SingleFlight[T]) Forget(key string) {
	g.group.Forget(key)
}
