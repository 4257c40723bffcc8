// Package id mints dispatch identifiers for job runs.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

type Generator interface {
	NewID() (string, error)
}

// TimeOrderedGenerator returns UUIDv7 values, so dispatch IDs sort in the
// order the runs were started. A non-empty prefix is prepended as "prefix-".
type TimeOrderedGenerator struct {
	prefix string
}

func NewTimeOrderedGenerator(prefix string) *TimeOrderedGenerator {
	return &TimeOrderedGenerator{prefix: prefix}
}

func (g *TimeOrderedGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate dispatch id: %w", err)
	}
	if g.prefix == "" {
		return v.String(), nil
	}
	return g.prefix + "-" + v.String(), nil
}
