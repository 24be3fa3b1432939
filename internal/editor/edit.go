package editor

import "github.com/skotter-marq/video-editor-agent/internal/timeline"

// PropertyEdit is a partial update from the property panel. Nil fields are
// untouched. Every field the panel can change maps here; a speed change also
// re-derives the clip's timeline duration.
type PropertyEdit struct {
	Name *string `json:"name,omitempty"`

	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Scale    *float64 `json:"scale,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`

	Brightness *float64 `json:"brightness,omitempty"`
	Contrast   *float64 `json:"contrast,omitempty"`
	Saturation *float64 `json:"saturation,omitempty"`
	Hue        *float64 `json:"hue,omitempty"`

	Volume *float64 `json:"volume,omitempty"`
	Speed  *float64 `json:"speed,omitempty"`
	Muted  *bool    `json:"muted,omitempty"`
}

// applyTo produces the edited clip. Speed runs through the resolver so the
// timeline duration invariant holds; everything else is set then normalized
// into range.
func (e PropertyEdit) applyTo(c *timeline.Clip) *timeline.Clip {
	out := c.Clone()

	if e.Name != nil {
		out.Name = *e.Name
	}
	if e.X != nil {
		out.Transform.X = *e.X
	}
	if e.Y != nil {
		out.Transform.Y = *e.Y
	}
	if e.Scale != nil {
		out.Transform.Scale = *e.Scale
	}
	if e.Rotation != nil {
		out.Transform.Rotation = *e.Rotation
	}
	if e.Opacity != nil {
		out.Transform.Opacity = *e.Opacity
	}
	if e.Brightness != nil {
		out.Effects.Brightness = *e.Brightness
	}
	if e.Contrast != nil {
		out.Effects.Contrast = *e.Contrast
	}
	if e.Saturation != nil {
		out.Effects.Saturation = *e.Saturation
	}
	if e.Hue != nil {
		out.Effects.Hue = *e.Hue
	}
	if e.Volume != nil {
		out.Audio.Volume = *e.Volume
	}
	if e.Muted != nil {
		out.Audio.Muted = *e.Muted
	}
	if e.Speed != nil {
		out = timeline.ApplySpeed(out, *e.Speed)
	}

	out.Normalize()
	return out
}
