package transfer

import (
	"golang.org/x/sys/unix"

	"github.com/joshuapare/scrubkit/internal/wipe"
	"github.com/joshuapare/scrubkit/locate"
)

// Shim wraps the raw transfer primitives resolved through loc.
type Shim struct {
	loc *locate.Table
}

// New returns a Shim delegating to loc.
func New(loc *locate.Table) *Shim {
	return &Shim{loc: loc}
}

// std is the process-wide shim behind the package-level functions.
var std = New(locate.Default)

// Write writes p to fd, then zero-fills all of p. The byte count and error
// of the underlying write are returned unchanged.
func (s *Shim) Write(fd int, p []byte) (int, error) {
	fns, err := s.loc.Funcs()
	if err != nil {
		wipe.Bytes(p)
		return 0, err
	}
	n, werr := fns.Write(fd, p)
	wipe.Bytes(p)
	return n, werr
}

// Send transmits p on a connected socket, then zero-fills all of p.
func (s *Shim) Send(fd int, p []byte, flags int) error {
	return s.SendTo(fd, p, flags, nil)
}

// SendTo transmits p to the given destination, then zero-fills all of p.
// A nil destination sends on a connected socket.
func (s *Shim) SendTo(fd int, p []byte, flags int, to unix.Sockaddr) error {
	fns, err := s.loc.Funcs()
	if err != nil {
		wipe.Bytes(p)
		return err
	}
	werr := fns.Sendto(fd, p, flags, to)
	wipe.Bytes(p)
	return werr
}

// SendMsg transmits a scatter-gather message, then zero-fills the full
// declared length of every segment, independent of how many bytes the kernel
// reports as sent. Ancillary data in oob is not scrubbed.
func (s *Shim) SendMsg(fd int, bufs [][]byte, oob []byte, to unix.Sockaddr, flags int) (int, error) {
	fns, err := s.loc.Funcs()
	if err != nil {
		wipeAll(bufs)
		return 0, err
	}
	n, werr := fns.Sendmsg(fd, bufs, oob, to, flags)
	wipeAll(bufs)
	return n, werr
}

// Writev writes a scatter-gather list to fd, then zero-fills the full
// declared length of every segment.
func (s *Shim) Writev(fd int, bufs [][]byte) (int, error) {
	fns, err := s.loc.Funcs()
	if err != nil {
		wipeAll(bufs)
		return 0, err
	}
	n, werr := fns.Writev(fd, bufs)
	wipeAll(bufs)
	return n, werr
}

func wipeAll(bufs [][]byte) {
	for _, b := range bufs {
		wipe.Bytes(b)
	}
}

// Write writes through the process-wide shim.
func Write(fd int, p []byte) (int, error) { return std.Write(fd, p) }

// Send transmits through the process-wide shim.
func Send(fd int, p []byte, flags int) error { return std.Send(fd, p, flags) }

// SendTo transmits through the process-wide shim.
func SendTo(fd int, p []byte, flags int, to unix.Sockaddr) error {
	return std.SendTo(fd, p, flags, to)
}

// SendMsg transmits through the process-wide shim.
func SendMsg(fd int, bufs [][]byte, oob []byte, to unix.Sockaddr, flags int) (int, error) {
	return std.SendMsg(fd, bufs, oob, to, flags)
}

// Writev writes through the process-wide shim.
func Writev(fd int, bufs [][]byte) (int, error) { return std.Writev(fd, bufs) }
