// Package diagnostics sends structured diagnostic events to a remote sink without blocking callers.
package diagnostics

import "time"

// TopicLogged is the stream topic used when events are queued instead of posted directly.
const TopicLogged = "diagnostics.logged"

// DefaultEndpoint is the sink events are posted to unless configured otherwise.
const DefaultEndpoint = "http://localhost:5173/log"

// Level is the severity of a diagnostic event.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// Event is the payload delivered to the sink.
type Event struct {
	Stack     string    `doc:"Call stack captured when the event was logged" json:"stack"`
	Level     Level     `doc:"Severity"                                      enum:"debug,info,warn,error,fatal" json:"level"`
	Package   string    `doc:"Component that logged the event"               example:"shortener"                json:"package"`
	Message   string    `doc:"Human readable message"                        json:"message"`
	Timestamp time.Time `doc:"When the event was logged"                     json:"timestamp"`
}

// Logger records diagnostic events. Log never blocks on delivery.
type Logger interface {
	Log(level Level, pkg, message string)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Log(Level, string, string) {}
