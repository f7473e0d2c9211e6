package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	output  io.Writer = os.Stderr
	verbose bool
)

// SetOutput redirects all log output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// SetVerbose turns debug output on regardless of TRK_DEBUG.
func SetVerbose(on bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = on
}

// DebugEnabled returns true if debug mode is enabled via SetVerbose or the
// TRK_DEBUG environment variable
func DebugEnabled() bool {
	mu.Lock()
	on := verbose
	mu.Unlock()
	return on || os.Getenv("TRK_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write("debug: " + fmt.Sprintf(format, args...))
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write("debug: " + fmt.Sprintln(args...))
	}
}

// Errorf always prints a formatted error message.
func Errorf(format string, args ...interface{}) {
	write("error: " + fmt.Sprintf(format, args...))
}

func write(line string) {
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line += "\n"
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprint(output, line)
}
