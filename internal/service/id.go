// internal/service/id.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newID builds a time-based external identifier like
// "QT-1719412345678-3fa4b1c2". Millisecond timestamp plus a random
// suffix keeps collisions out without a central sequence.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.New().String()[:8])
}
