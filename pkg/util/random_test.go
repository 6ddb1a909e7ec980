package util

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	a := GenerateOrderNumber(now)
	b := GenerateOrderNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^WH-20261018-[0-9A-F]{6}$`), a)
	assert.NotEqual(t, a, b)
}
