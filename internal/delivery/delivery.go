// Package delivery defines the entrypoints that expose the application to the
// outside world.
package delivery

import "context"

// Delivery is a long-running entrypoint such as an HTTP server. Serve blocks
// until the delivery stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
