package server

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// WebLogger implements core.Logger for a single render, tagging every line
// with the render ID and remembering the most recent message
type WebLogger struct {
	renderID string
	out      *log.Logger
	mu       sync.Mutex
	last     ConsoleMessage
	count    int
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, out *log.Logger) *WebLogger {
	return &WebLogger{
		renderID: renderID,
		out:      out,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	wl.mu.Lock()
	wl.last = ConsoleMessage{Message: message, Timestamp: time.Now()}
	wl.count++
	wl.mu.Unlock()

	if wl.out != nil {
		wl.out.Printf("[%s] %s", wl.renderID, message)
	}
}

// Last returns the most recent message and how many have been logged
func (wl *WebLogger) Last() (ConsoleMessage, int) {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return wl.last, wl.count
}
