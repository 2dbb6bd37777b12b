package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	name     string
	startErr error
	exitNow  bool
	stopped  atomic.Bool
	stopCh   chan struct{}
}

func newStubService(name string) *stubService {
	return &stubService{name: name, stopCh: make(chan struct{})}
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.startErr != nil || s.exitNow {
		return s.startErr
	}
	select {
	case <-ctx.Done():
	case <-s.stopCh:
	}
	return nil
}

func (s *stubService) Stop(context.Context) error {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopCh)
	}
	return nil
}

func TestRunnerStopsAllOnContextCancel(t *testing.T) {
	a, b := newStubService("a"), newStubService("b")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewRunner(a, b).Run(ctx, time.Second, nil) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
	assert.True(t, a.stopped.Load())
	assert.True(t, b.stopped.Load())
}

func TestRunnerPropagatesStartError(t *testing.T) {
	broken := newStubService("broken")
	broken.startErr = errors.New("bind: address in use")
	healthy := newStubService("healthy")

	err := NewRunner(broken, healthy).Run(context.Background(), time.Second, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address in use")
	assert.True(t, healthy.stopped.Load())
}

func TestRunnerServiceExitStopsOthers(t *testing.T) {
	quick := newStubService("quick")
	quick.exitNow = true
	long := newStubService("long")

	require.NoError(t, NewRunner(quick, long).Run(context.Background(), time.Second, nil))
	assert.True(t, long.stopped.Load())
}

func TestRunnerRequiresServices(t *testing.T) {
	require.Error(t, NewRunner().Run(context.Background(), time.Second, nil))
}

func TestValidateMode(t *testing.T) {
	for _, mode := range []string{ModeAll, ModeAPI, ModeWorker} {
		assert.NoError(t, ValidateMode(mode))
	}
	assert.ErrorIs(t, ValidateMode("cron"), ErrUnknownMode)
}
