package util

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber returns a customer-facing order number such as
// WH-20261018-3F9A1C.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return "WH-" + now.Format("20060102") + "-" + suffix
}

// GenerateRequestID returns a unique id for request tracing.
func GenerateRequestID() string {
	return uuid.NewString()
}
