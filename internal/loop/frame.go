package loop

import "time"

// Frame carries the per-frame context handed to every system.
type Frame struct {
	// Now is the timestamp the frame was started with.
	Now time.Time
	// DeltaTime is the time since the previous frame in seconds, zero on the
	// first frame.
	DeltaTime float64
	Index     int64
	Commands  *Commands
}
