// Package signal turns SIGINT and SIGTERM into context cancellation for
// the slidemaker CLI.
//
// Canceling the context stops in-flight remote calls, backoff sleeps and
// limiter waits, so a run stops at its last saved attempt.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// exit is replaced in tests.
var exit = os.Exit

// WithInterrupt returns a context canceled on the first SIGINT or SIGTERM.
// onInterrupt, when non-nil, runs before cancellation. A second signal
// exits the process immediately with status 130.
//
// The returned stop function releases the signal registration and cancels
// the context; call it when the command finishes.
//
// Example usage:
//
//	ctx, stop := signal.WithInterrupt(context.Background(), func(sig os.Signal) {
//	    logging.Warn("Received " + sig.String() + ", cancelling remote calls...")
//	})
//	defer stop()
func WithInterrupt(parent context.Context, onInterrupt func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			if onInterrupt != nil {
				onInterrupt(sig)
			}
			cancel()
		case <-done:
			return
		}

		select {
		case <-sigCh:
			exit(130)
		case <-done:
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
		cancel()
	}
	return ctx, stop
}
