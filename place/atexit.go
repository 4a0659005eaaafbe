package place

import "github.com/tebeka/atexit"

// RegisterBestEffortFlush registers cb to run when the process calls
// atexit.Exit, the same shutdown hook every teacher sample main()
// relies on to flush state before exiting. Place itself never calls
// atexit.Exit; callers that want a report or placement file flushed
// even on an unexpected early exit register it here instead of relying
// on a deferred call that a panic or os.Exit would skip.
func RegisterBestEffortFlush(cb func()) {
	atexit.Register(cb)
}
