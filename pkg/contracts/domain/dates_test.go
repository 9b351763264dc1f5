package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseReportDate(t *testing.T) {
	got, ok := ParseReportDate("03/01/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseReportDate("2024-01-03")
	assert.False(t, ok)

	_, ok = ParseReportDate("")
	assert.False(t, ok)
}
