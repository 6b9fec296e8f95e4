package renderer

import (
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// GlogLogger implements core.Logger on top of glog's info log
type GlogLogger struct{}

func (gl *GlogLogger) Printf(format string, args ...interface{}) {
	// glog terminates every entry itself
	glog.InfoDepth(1, strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// NewGlogLogger creates a logger that writes through glog
func NewGlogLogger() core.Logger {
	return &GlogLogger{}
}

// nopLogger discards everything
type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}
