package transfer

import (
	"io"

	"github.com/joshuapare/scrubkit/internal/wipe"
)

// Writer is a destructive io.Writer wrapper. Write forwards p to W and then
// zero-fills all of p before returning, which breaks io.Writer's rule that
// implementations must not modify the slice. That breakage is the point:
// once the bytes have been handed downstream they are gone from the caller's
// buffer. Not a drop-in replacement for writers the caller expects to be
// faithful.
type Writer struct {
	W io.Writer
}

// Write forwards p to the wrapped writer, then zero-fills all of p,
// regardless of the outcome or of a short write.
func (w Writer) Write(p []byte) (int, error) {
	n, err := w.W.Write(p)
	wipe.Bytes(p)
	return n, err
}

// WriteBuffers writes every segment in order, stopping the forwarding at the
// first error, and then zero-fills the full length of every segment whether
// or not it was written. Returns the total bytes forwarded and the first
// error encountered.
func (w Writer) WriteBuffers(bufs [][]byte) (int64, error) {
	var (
		total int64
		err   error
	)
	for _, b := range bufs {
		if err != nil {
			continue
		}
		var n int
		n, err = w.W.Write(b)
		total += int64(n)
	}
	wipeAll(bufs)
	return total, err
}
