package parameter

import "time"

// Frame Loop
const (
	// FrameDelay is the pause between presented frames
	FrameDelay = 80 * time.Millisecond

	// SpinAngle rotates the global transform about Z each frame
	SpinAngle = 0.03

	// TumbleRoll and TumblePitch form the second per-frame rotation
	TumbleRoll  = 0.1
	TumblePitch = -0.05
)
