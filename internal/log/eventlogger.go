package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// EventLogger dumps single event lines. in=true marks a raw backend event,
// in=false a normalized event produced by the mapper.
type EventLogger interface {
	Log(in bool, line string)
}

type eventLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewEvent creates an EventLogger writing to w. A nil w yields a no-op logger.
func NewEvent(w io.Writer) EventLogger {
	return &eventLogger{w: w, now: time.Now}
}

func (e *eventLogger) Log(in bool, line string) {
	if e.w == nil || line == "" {
		return
	}
	dir := "MAP<"
	if in {
		dir = "RAW>"
	}
	out := fmt.Sprintf("%s %s %s\n", e.now().Format("2006/01/02 15:04:05.000"), dir, line)

	e.mu.Lock()
	_, _ = io.WriteString(e.w, out)
	e.mu.Unlock()
}
