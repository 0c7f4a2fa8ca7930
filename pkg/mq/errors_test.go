package mq

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldRequeue(t *testing.T) {
	base := errors.New("database is down")

	assert.True(t, ShouldRequeue(Temporary(base)))
	assert.True(t, ShouldRequeue(fmt.Errorf("reconcile: %w", Temporary(base))))
	assert.False(t, ShouldRequeue(base))
	assert.ErrorIs(t, Temporary(base), base)
}
