// Package debug provides conditional debug logging for ahkam.
//
// Debug logging is enabled by setting AHKAM_DEBUG:
//
//	AHKAM_DEBUG=1 ahkam --print
//
// Messages go to stderr until the TUI takes over the terminal; from then on
// they go to the file named by AHKAM_DEBUG_LOG (default ahkam-debug.log).
// When disabled, every function is a no-op.
package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const prefix = "[AHKAM_DEBUG] "

var (
	mu      sync.Mutex
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("AHKAM_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// SetEnabled turns debug logging on or off.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, prefix, log.Ltime|log.Lmicroseconds)
}

// ToFile routes debug output to a file so it does not corrupt the alt
// screen. It returns a close function; when debugging is off it does nothing.
func ToFile() (func() error, error) {
	if !Enabled() {
		return func() error { return nil }, nil
	}
	path := os.Getenv("AHKAM_DEBUG_LOG")
	if path == "" {
		path = "ahkam-debug.log"
	}
	f, err := tea.LogToFile(path, "ahkam")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	SetOutput(f)
	return f.Close, nil
}

func printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled || logger == nil {
		return
	}
	logger.Printf(format, args...)
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	printf(format, args...)
}

// LogTiming writes a timing message.
func LogTiming(name string, d time.Duration) {
	printf("%s took %v", name, d)
}

// LogIf writes a debug message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond {
		return
	}
	printf(format, args...)
}

// LogEnterExit logs entry and exit with timing:
//
//	defer debug.LogEnterExit("render")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	printf("-> %s", name)
	start := time.Now()
	return func() {
		printf("<- %s (%v)", name, time.Since(start))
	}
}
