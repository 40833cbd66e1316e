// Package transfer wraps the write/send family so that source buffers are
// zero-filled the moment the data has left the process.
//
// Every function here is destructive by design: the underlying operation runs
// first, unconditionally, and then the full declared length of every source
// buffer is scrubbed, whether the transfer succeeded, failed, or came up
// short. The wrapped interfaces promise not to touch caller-owned input;
// this package breaks that promise on purpose, because a transmit buffer
// that survives the call is exactly the leak being closed. Callers that need
// their bytes after a write must keep their own copy.
//
// Scatter-gather variants scrub each segment's full length independent of
// how many bytes the underlying call reports as transferred. A short write
// therefore destroys data that was never sent; that tradeoff favors the
// scrubbing guarantee over caller-side retry convenience and is asserted by
// the tests rather than left as an accident.
//
// The fd-level functions delegate to the primitives resolved by package
// locate. When resolution fails they return the error through the normal
// result channel and still scrub, so the guarantee "the buffer is zero when
// the call returns" holds on every path.
//
// Writer provides the same contract over any io.Writer.
package transfer
