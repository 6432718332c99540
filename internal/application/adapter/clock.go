// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time to use cases that default to "now".
type Clock interface {
	Now() time.Time
}
