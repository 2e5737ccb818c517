package database

import (
	"context"
	"fmt"
)

// Check is one named readiness probe.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Ready runs checks in order and stops at the first failure, returning the
// failing dependency's name with the error.
func Ready(ctx context.Context, checks ...Check) (string, error) {
	for _, c := range checks {
		if c.Ping == nil {
			continue
		}
		if err := c.Ping(ctx); err != nil {
			return c.Name, fmt.Errorf("%s: %w", c.Name, err)
		}
	}
	return "", nil
}
