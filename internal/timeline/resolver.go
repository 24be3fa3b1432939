package timeline

// MinClipLength is the floor for a clip's trimmed duration, in source
// seconds. Trims that would leave less than this are clamped back.
const MinClipLength = 0.1

// Property ranges enforced by normalization.
const (
	MinSpeed  = 0.25
	MaxSpeed  = 4.0
	MaxVolume = 2.0
)

// ApplyTrimLeft moves the clip's in-point. The proposal is clamped to
// [0, trimEnd-MinClipLength]; the timeline start shifts by the same amount so
// the out edge stays put. Invalid proposals return the clip unchanged;
// intermediate drag positions are expected to miss and are simply ignored.
func ApplyTrimLeft(c *Clip, proposedTrimStart float64) *Clip {
	if c.TrimEnd-MinClipLength < 0 {
		return c
	}
	ts := clamp(proposedTrimStart, 0, c.TrimEnd-MinClipLength)
	out := c.Clone()
	out.TimelineStart += (ts - c.TrimStart) / speedOf(c)
	out.TrimStart = ts
	if out.TimelineStart < 0 {
		// The trim would push the clip's head before the timeline origin;
		// pin the origin and give the lost shift back to the trim so the
		// timeline length still matches the trimmed source length.
		delta := -out.TimelineStart * speedOf(c)
		out.TimelineStart = 0
		out.TrimStart = clamp(out.TrimStart+delta, 0, out.TrimEnd-MinClipLength)
	}
	if out.TrimEnd-out.TrimStart < MinClipLength {
		return c
	}
	return out
}

// ApplyTrimRight moves the clip's out-point. The proposal is clamped to
// [trimStart+MinClipLength, sourceDuration]; the timeline end is re-derived
// and the in edge stays put.
func ApplyTrimRight(c *Clip, proposedTrimEnd float64) *Clip {
	if c.TrimStart+MinClipLength > c.SourceDuration {
		return c
	}
	te := clamp(proposedTrimEnd, c.TrimStart+MinClipLength, c.SourceDuration)
	out := c.Clone()
	out.TrimEnd = te
	out.TimelineEnd = out.TimelineStart + (te-out.TrimStart)/speedOf(c)
	if out.TrimEnd-out.TrimStart < MinClipLength {
		return c
	}
	return out
}

// ApplyMove shifts the whole clip to a new timeline start, preserving its
// length. The start is clamped at 0. Overlap with other clips is allowed; the
// arrangement order decides stacking.
func ApplyMove(c *Clip, proposedTimelineStart float64) *Clip {
	start := proposedTimelineStart
	if start < 0 {
		start = 0
	}
	out := c.Clone()
	length := c.Duration()
	out.TimelineStart = start
	out.TimelineEnd = start + length
	return out
}

// ApplySpeed changes the playback rate and re-derives the timeline end so
// that timeline duration stays (trimEnd-trimStart)/speed.
func ApplySpeed(c *Clip, newSpeed float64) *Clip {
	speed := clamp(newSpeed, MinSpeed, MaxSpeed)
	out := c.Clone()
	out.Audio.Speed = speed
	out.TimelineEnd = out.TimelineStart + (out.TrimEnd-out.TrimStart)/speed
	return out
}

// Normalize clamps every bounded property into its legal range. Rotation is
// left as-is; collaborators normalize it mod 360 for display only.
func (c *Clip) Normalize() {
	if c.Transform.Scale <= 0 {
		c.Transform.Scale = 0.01
	}
	c.Transform.Opacity = clamp(c.Transform.Opacity, 0, 1)
	c.Effects.Brightness = clamp(c.Effects.Brightness, -100, 100)
	c.Effects.Contrast = clamp(c.Effects.Contrast, -100, 100)
	c.Effects.Saturation = clamp(c.Effects.Saturation, -100, 100)
	c.Effects.Hue = clamp(c.Effects.Hue, -180, 180)
	c.Audio.Volume = clamp(c.Audio.Volume, 0, MaxVolume)
	c.Audio.Speed = clamp(c.Audio.Speed, MinSpeed, MaxSpeed)
}

// Valid reports whether the clip satisfies the placement invariants.
func (c *Clip) Valid() bool {
	if c.TimelineEnd <= c.TimelineStart || c.TimelineStart < 0 {
		return false
	}
	if c.TrimStart < 0 || c.TrimEnd <= c.TrimStart || c.TrimEnd > c.SourceDuration {
		return false
	}
	return true
}

func speedOf(c *Clip) float64 {
	if c.Audio.Speed <= 0 {
		return 1
	}
	return c.Audio.Speed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
