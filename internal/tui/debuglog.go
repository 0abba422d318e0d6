package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"kanban-cli/internal/dnd"
)

// debugLog appends timestamped lines to KANBAN_TUI_DEBUG_LOG. The zero value (no
// path) discards everything.
type debugLog struct {
	path string
}

func (l debugLog) enabled() bool { return strings.TrimSpace(l.path) != "" }

func (l debugLog) logf(format string, args ...any) {
	if !l.enabled() {
		return
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = fmt.Fprintf(f, "%s "+format+"\n", append([]any{time.Now().Format("15:04:05.000")}, args...)...)
}

// observe is installed as the session observer.
func (l debugLog) observe(ev dnd.Event) {
	if ev.Target != "" {
		l.logf("dnd %s target=%s payload=%s", ev.Kind, ev.Target, ev.Payload.ID)
		return
	}
	l.logf("dnd %s payload=%s", ev.Kind, ev.Payload.ID)
}
