// Package logx configures apex/log for the command-line tools.
package logx

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// Init sets up apex/log with a compact handler and a level taken from the
// FETCHCACHE_LOG env variable (default ERROR).
func Init() {
	level := strings.ToUpper(os.Getenv("FETCHCACHE_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&handler{})
	log.SetLevelFromString(level)
}

// handler writes "<ts> <L> <msg> k=v ..." lines to stderr.
type handler struct{}

// HandleLog implements the log.Handler interface.
func (h *handler) HandleLog(e *log.Entry) error {
	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(os.Stderr, "%s %.1s %s", ts, strings.ToUpper(e.Level.String()), e.Message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(os.Stderr, " %s=%v", name, e.Fields.Get(name))
	}
	fmt.Fprintln(os.Stderr)
	return nil
}
