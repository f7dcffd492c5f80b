package render

import (
	"fmt"
	"time"
)

// DefaultDiagnosticTTL is how long a diagnostic stays on screen.
const DefaultDiagnosticTTL = 5 * time.Second

type diagnostic struct {
	message string
	at      time.Time
}

// Diagnostics collects problems found while playing (terminal fallback,
// failed reloads, ...). It is owned by the frame loop, which passes the
// current messages into every Render call.
type Diagnostics struct {
	ttl     time.Duration
	entries []diagnostic
}

// NewDiagnostics creates a collector whose messages expire after ttl.
// A ttl of zero keeps messages until Clear.
func NewDiagnostics(ttl time.Duration) *Diagnostics {
	return &Diagnostics{ttl: ttl}
}

// Add records a message at instant at.
func (d *Diagnostics) Add(at time.Time, format string, args ...any) {
	d.entries = append(d.entries, diagnostic{message: fmt.Sprintf(format, args...), at: at})
}

// Current drops expired messages and returns the remaining ones, oldest first.
func (d *Diagnostics) Current(now time.Time) []string {
	kept := d.entries[:0]
	for _, e := range d.entries {
		if d.ttl > 0 && now.Sub(e.at) >= d.ttl {
			continue
		}
		kept = append(kept, e)
	}
	d.entries = kept

	messages := make([]string, len(kept))
	for i, e := range kept {
		messages[i] = e.message
	}
	return messages
}

// Len is the number of stored messages, expired or not.
func (d *Diagnostics) Len() int {
	return len(d.entries)
}

// Clear removes all messages.
func (d *Diagnostics) Clear() {
	d.entries = nil
}
