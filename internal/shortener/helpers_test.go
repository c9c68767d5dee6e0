package shortener_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/serroba/short-links/internal/diagnostics"
)

const (
	testBaseURL = "http://localhost:3000"
	testURL     = "https://example.com"
)

var errStoreDown = errors.New("store down")

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type loggedEvent struct {
	level   diagnostics.Level
	pkg     string
	message string
}

type recordingDiagnostics struct {
	mu     sync.Mutex
	events []loggedEvent
}

func (r *recordingDiagnostics) Log(level diagnostics.Level, pkg, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, loggedEvent{level: level, pkg: pkg, message: message})
}

func (r *recordingDiagnostics) levels() []diagnostics.Level {
	r.mu.Lock()
	defer r.mu.Unlock()

	levels := make([]diagnostics.Level, 0, len(r.events))
	for _, e := range r.events {
		levels = append(levels, e.level)
	}

	return levels
}

// failingStore returns configured errors from every call.
type failingStore struct {
	getErr error
	setErr error
	value  string
}

func (f *failingStore) Get(_ context.Context, _ string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}

	return f.value, nil
}

func (f *failingStore) Set(_ context.Context, _, _ string) error {
	return f.setErr
}

func fixedCode(code string) func() string {
	return func() string { return code }
}

func intPtr(v int) *int {
	return &v
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

// sequenceCodes returns each code in turn, then repeats the last one.
func sequenceCodes(codes ...string) func() string {
	var (
		mu sync.Mutex
		i  int
	)

	return func() string {
		mu.Lock()
		defer mu.Unlock()

		code := codes[min(i, len(codes)-1)]
		i++

		return code
	}
}
