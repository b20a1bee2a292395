package server

import (
	"fmt"
	"log"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// WebLogger implements core.Logger by tagging each message with its render ID
type WebLogger struct {
	renderID string
	logger   *log.Logger
}

// NewWebLogger creates a new web logger for a specific render.
// A nil logger writes through the standard logger.
func NewWebLogger(renderID string, logger *log.Logger) core.Logger {
	if logger == nil {
		logger = log.Default()
	}
	return &WebLogger{
		renderID: renderID,
		logger:   logger,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	wl.logger.Printf("[%s] %s", wl.renderID, message)
}
