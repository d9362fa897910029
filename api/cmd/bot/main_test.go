package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryDelayFromError(t *testing.T) {
	assert.Equal(t, time.Duration(0), retryDelayFromError(nil))
	assert.Equal(t, 7*time.Second, retryDelayFromError(errors.New("Too Many Requests: retry after 7")))
	assert.Equal(t, 3*time.Second, retryDelayFromError(errors.New("too many requests")))
	assert.Equal(t, time.Second, retryDelayFromError(errors.New("bad gateway")))
}

func TestShortHash(t *testing.T) {
	a := shortHash("123:abc")
	assert.Equal(t, a, shortHash("123:abc"))
	assert.NotEqual(t, a, shortHash("123:abd"))
}
