// Package lifecycle defines shared constants for application lifecycle management.
package lifecycle

import "time"

// DefaultTimeout is the default timeout for lifecycle operations such as
// graceful shutdown and resource cleanup.
const DefaultTimeout = 10 * time.Second
