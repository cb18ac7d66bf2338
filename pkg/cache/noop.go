package cache

import (
	"context"
	"time"
)

// Noop is a Cache that never stores anything.
// Used when Redis is disabled so repositories need no nil checks.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) {
	return false, nil
}

func (Noop) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (Noop) Delete(context.Context, ...string) error {
	return nil
}

func (Noop) Ping(context.Context) error {
	return nil
}
