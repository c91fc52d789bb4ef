package goroutine

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfwatch/internal/shared/logger"
)

func TestRun_ReturnsError(t *testing.T) {
	want := errors.New("boom")
	err := Run(logger.NewNopLogger(), "tenant", func() error { return want })
	assert.ErrorIs(t, err, want)
}

func TestRun_RecoversPanic(t *testing.T) {
	err := Run(logger.NewNopLogger(), "tenant:t-1", func() error {
		panic("nil map")
	})

	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "tenant:t-1", pe.Name)
	assert.Equal(t, "nil map", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestSafeGo_DoesNotCrash(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	SafeGo(logger.NewNopLogger(), "worker", func() {
		defer wg.Done()
		panic("unexpected")
	})
	wg.Wait()
}
