package diag

import (
	"fmt"
	"strings"
)

// FormatShort renders diagnostics one per line as
// "SEVERITY CODE path:line:col message", with one-based line and column.
// Multi-line messages are folded into one line.
func FormatShort(path string, diags []Diagnostic) string {
	var b strings.Builder
	for i := range diags {
		d := &diags[i]
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s",
			d.Severity, d.Code.ID(), path,
			d.Primary.Start.Line+1, d.Primary.Start.Character+1,
			sanitizeMessage(d.Message))
		if i < len(diags)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
