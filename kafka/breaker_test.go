package kafka

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := NewBreaker("test", 2, time.Minute)
	fail := func() error { return errors.New("broker down") }

	require.Error(t, b.Call(fail))
	assert.Equal(t, BreakerClosed, b.State())
	require.Error(t, b.Call(fail))
	assert.Equal(t, BreakerOpen, b.State())

	called := false
	err := b.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.False(t, called)
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b := NewBreaker("test", 2, time.Minute)

	require.Error(t, b.Call(func() error { return errors.New("x") }))
	require.NoError(t, b.Call(func() error { return nil }))
	require.Error(t, b.Call(func() error { return errors.New("x") }))

	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_HalfOpenRecovery(t *testing.T) {
	b := NewBreaker("test", 1, time.Second)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }

	require.Error(t, b.Call(func() error { return errors.New("x") }))
	assert.Equal(t, BreakerOpen, b.State())

	clock = clock.Add(2 * time.Second)
	for i := 0; i < halfOpenSuccessesToClose; i++ {
		require.NoError(t, b.Call(func() error { return nil }))
	}
	assert.Equal(t, BreakerClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := NewBreaker("test", 1, time.Second)
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }

	require.Error(t, b.Call(func() error { return errors.New("x") }))
	clock = clock.Add(2 * time.Second)
	require.Error(t, b.Call(func() error { return errors.New("still down") }))

	assert.Equal(t, BreakerOpen, b.State())
}
