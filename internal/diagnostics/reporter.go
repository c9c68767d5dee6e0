package diagnostics

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/serroba/short-links/internal/messaging"
	"go.uber.org/zap"
)

// Reporter builds events and hands each one to a publish function on its own goroutine.
// Delivery results only reach the local zap logger. Events logged after Shutdown are dropped.
type Reporter struct {
	publish messaging.Publish[Event]
	logger  *zap.Logger
	now     func() time.Time

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewReporter creates a reporter that delivers events through publish.
func NewReporter(publish messaging.Publish[Event], logger *zap.Logger) *Reporter {
	return &Reporter{
		publish: publish,
		logger:  logger,
		now:     time.Now,
	}
}

// Log captures the caller's stack and sends the event in the background.
func (r *Reporter) Log(level Level, pkg, message string) {
	stack := string(debug.Stack())

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		r.logger.Debug("dropping diagnostic event after shutdown",
			zap.String("level", string(level)),
			zap.String("package", pkg),
			zap.String("message", message),
		)

		return
	}

	r.wg.Add(1)
	r.mu.Unlock()

	event := &Event{
		Stack:     stack,
		Level:     level,
		Package:   pkg,
		Message:   message,
		Timestamp: r.now().UTC().Truncate(time.Millisecond),
	}

	go r.send(event)
}

func (r *Reporter) send(event *Event) {
	defer r.wg.Done()

	if err := r.publish(context.Background(), event); err != nil {
		r.logger.Warn("failed to send diagnostic event",
			zap.String("level", string(event.Level)),
			zap.String("package", event.Package),
			zap.String("message", event.Message),
			zap.Error(err),
		)

		return
	}

	r.logger.Debug("diagnostic event sent",
		zap.String("level", string(event.Level)),
		zap.String("package", event.Package),
	)
}

// Wait blocks until every event logged so far has been handed off or has failed.
// It must not run concurrently with Log; use Shutdown for that.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

// Shutdown stops accepting events and drains the ones in flight. It is safe to call more than once.
func (r *Reporter) Shutdown() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.wg.Wait()

	return nil
}

// Compile-time check.
var _ Logger = (*Reporter)(nil)
