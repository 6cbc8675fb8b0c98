package signal

import (
	"context"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not canceled")
	}
}

func TestWithInterrupt_SIGINTCancelsAndCallsCallback(t *testing.T) {
	var got atomic.Value
	ctx, stop := WithInterrupt(context.Background(), func(sig os.Signal) {
		got.Store(sig)
	})
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	waitDone(t, ctx)

	assert.Equal(t, syscall.SIGINT, got.Load())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWithInterrupt_SIGTERM(t *testing.T) {
	ctx, stop := WithInterrupt(context.Background(), nil)
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
	waitDone(t, ctx)
}

func TestWithInterrupt_SecondSignalExits(t *testing.T) {
	codes := make(chan int, 1)
	old := exit
	exit = func(code int) { codes <- code }
	defer func() { exit = old }()

	ctx, stop := WithInterrupt(context.Background(), nil)
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))
	waitDone(t, ctx)
	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGINT))

	select {
	case code := <-codes:
		assert.Equal(t, 130, code)
	case <-time.After(2 * time.Second):
		t.Fatal("second signal did not force exit")
	}
}

func TestWithInterrupt_StopCancelsWithoutCallback(t *testing.T) {
	var called atomic.Bool
	ctx, stop := WithInterrupt(context.Background(), func(os.Signal) { called.Store(true) })

	stop()
	stop()
	waitDone(t, ctx)
	assert.False(t, called.Load())
}

func TestWithInterrupt_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := WithInterrupt(parent, nil)
	defer stop()

	cancel()
	waitDone(t, ctx)
}
