// Package util holds small shared helpers.
package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/teris-io/shortid"
)

// GenerateOrderNumber returns a human-readable order number of the form
// ORD-<unix-millis>-<shortid>. The shortid suffix keeps numbers unique even
// when two orders land on the same millisecond.
func GenerateOrderNumber() string {
	suffix, err := shortid.Generate()
	if err != nil {
		// shortid only fails on a broken entropy source; fall back to
		// nanosecond precision.
		return fmt.Sprintf("ORD-%d", time.Now().UnixNano())
	}

	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), strings.ToUpper(suffix))
}
