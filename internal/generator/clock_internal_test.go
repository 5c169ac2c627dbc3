package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnitSystemClockNow(t *testing.T) {
	clock := systemClock{}

	assert.WithinDuration(t, time.Now(), clock.Now(), time.Second, "should return current time")
}
