//go:build scrubdebug

package heap

import (
	"log/slog"
	"os"

	"github.com/joshuapare/scrubkit/internal/format"
)

// diag writes checked-build diagnostics to standard error. Library code logs
// nothing in normal builds.
var diag = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}))

// stampRecord writes the validity cookie checked again at release time.
func stampRecord(rec *format.Record) {
	rec.Cookie = format.Cookie
}

// checkRecord reports whether rec carries the cookie written at allocation
// time. A mismatch means the pointer was not produced by this shim or the
// header was overwritten; the caller must abandon the release.
func checkRecord(rec *format.Record) bool {
	if rec.Cookie != format.Cookie {
		diag.Error("invalid pointer: record cookie mismatch",
			"got", rec.Cookie, "want", format.Cookie)
		return false
	}
	return true
}

func debugf(msg string, args ...any) {
	diag.Debug(msg, args...)
}
