package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeRetryBackoffDoublesAndCaps(t *testing.T) {
	assert.Equal(t, time.Minute, computeRetryBackoff(1))
	assert.Equal(t, 2*time.Minute, computeRetryBackoff(2))
	assert.Equal(t, 4*time.Minute, computeRetryBackoff(3))
	assert.Equal(t, 8*time.Minute, computeRetryBackoff(4))

	// Never beyond an hour, no matter how many attempts.
	assert.Equal(t, time.Hour, computeRetryBackoff(10))
	assert.Equal(t, time.Hour, computeRetryBackoff(30))
}
