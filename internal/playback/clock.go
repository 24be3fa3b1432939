package playback

// ClockState is the playback transport state.
type ClockState string

const (
	StateStopped ClockState = "stopped"
	StatePlaying ClockState = "playing"
)

// Clock advances the playhead during playback. It has no timer of its own:
// the UI's animation-frame pump calls Tick with the elapsed seconds since the
// previous tick, so the clock stays a pure state machine.
type Clock struct {
	state ClockState
}

func NewClock() *Clock {
	return &Clock{state: StateStopped}
}

func (c *Clock) State() ClockState { return c.state }

func (c *Clock) Playing() bool { return c.state == StatePlaying }

// Play starts the transport. Playback over an empty timeline is refused.
func (c *Clock) Play(clipCount int) bool {
	if clipCount == 0 {
		return false
	}
	c.state = StatePlaying
	return true
}

// Pause freezes the transport without touching the playhead.
func (c *Clock) Pause() {
	c.state = StateStopped
}

// Stop freezes the transport; the caller resets the playhead to 0.
func (c *Clock) Stop() {
	c.state = StateStopped
}

// Tick advances the playhead by elapsed seconds and returns the new value.
// Reaching the end of the project clamps to its duration and stops the
// transport. Ticks while stopped are ignored.
func (c *Clock) Tick(playhead, elapsed, projectDuration float64) float64 {
	if c.state != StatePlaying || elapsed <= 0 {
		return playhead
	}
	playhead += elapsed
	if playhead >= projectDuration {
		playhead = projectDuration
		c.state = StateStopped
	}
	return playhead
}
