// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/gamevault/backoffice/internal/application/adapter"
)

type systemClock struct {
	location *time.Location
}

// NewSystemClock returns a clock reading wall time in location.
func NewSystemClock(location *time.Location) adapter.Clock {
	if location == nil {
		location = time.UTC
	}
	return systemClock{location: location}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.location)
}
