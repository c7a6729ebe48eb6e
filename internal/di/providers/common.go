// Package providers contains the DI provider functions for the lectern
// server and the lifecycle handles that shut its pieces down in order.
package providers

import "time"

// Version is the build version injected into the container.
type Version string

const (
	// shutdownTimeout is the maximum time to wait for graceful shutdown.
	shutdownTimeout = 10 * time.Second
)
