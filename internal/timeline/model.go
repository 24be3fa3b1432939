// Package timeline holds the edit state of a project: the clips placed on the
// shared timeline, their trim windows into source media, and the per-clip
// transform/effect/audio properties.
package timeline

import (
	"time"

	"github.com/google/uuid"
)

// Canvas aspect presets offered by the project picker.
const (
	AspectWide     = "16:9"
	AspectVertical = "9:16"
	AspectSquare   = "1:1"
	AspectClassic  = "4:3"
)

// Transform positions a clip on the canvas.
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
}

// Effects holds color adjustments. Brightness, contrast and saturation are
// percentages in [-100,100]; hue is degrees in [-180,180].
type Effects struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
	Hue        float64 `json:"hue"`
}

// Audio holds per-clip playback settings. Volume is a gain in [0,2], speed a
// rate multiplier in [0.25,4].
type Audio struct {
	Volume float64 `json:"volume"`
	Speed  float64 `json:"speed"`
	Muted  bool    `json:"muted"`
}

// Clip is one placed instance of a source asset. TimelineStart/TimelineEnd are
// seconds on the shared timeline; TrimStart/TrimEnd are seconds into the
// source asset. SourceDuration is denormalized from the media library at
// placement time so trim math never needs a library lookup.
type Clip struct {
	ID             string    `json:"id"`
	SourceID       string    `json:"source_id"`
	Name           string    `json:"name"`
	TimelineStart  float64   `json:"timeline_start"`
	TimelineEnd    float64   `json:"timeline_end"`
	TrimStart      float64   `json:"trim_start"`
	TrimEnd        float64   `json:"trim_end"`
	SourceDuration float64   `json:"source_duration"`
	Missing        bool      `json:"missing,omitempty"`
	Transform      Transform `json:"transform"`
	Effects        Effects   `json:"effects"`
	Audio          Audio     `json:"audio"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewClip places the full extent of a source asset at the given timeline
// offset with default properties.
func NewClip(sourceID, name string, sourceDuration, at float64) *Clip {
	if at < 0 {
		at = 0
	}
	return &Clip{
		ID:             uuid.NewString(),
		SourceID:       sourceID,
		Name:           name,
		TimelineStart:  at,
		TimelineEnd:    at + sourceDuration,
		TrimStart:      0,
		TrimEnd:        sourceDuration,
		SourceDuration: sourceDuration,
		Transform:      Transform{Scale: 1, Opacity: 1},
		Audio:          Audio{Volume: 1, Speed: 1},
		CreatedAt:      time.Now(),
	}
}

// Duration returns the clip's length on the timeline.
func (c *Clip) Duration() float64 {
	return c.TimelineEnd - c.TimelineStart
}

// Clone returns an independent copy.
func (c *Clip) Clone() *Clip {
	out := *c
	return &out
}

// Project is the root aggregate: canvas settings plus the ordered clip
// sequence. Array order is arrangement (z) order, not timeline order.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	AspectRatio string    `json:"aspect_ratio"`
	Clips       []*Clip   `json:"clips"`
	Playhead    float64   `json:"playhead"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProject creates an empty project with the given canvas.
func NewProject(name string, width, height int, aspect string) *Project {
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Width:       width,
		Height:      height,
		AspectRatio: aspect,
		CreatedAt:   time.Now(),
	}
}

// Clone returns a deep copy, used for history snapshots and read-only
// views handed to collaborators.
func (p *Project) Clone() *Project {
	out := *p
	out.Clips = make([]*Clip, len(p.Clips))
	for i, c := range p.Clips {
		out.Clips[i] = c.Clone()
	}
	return &out
}

// Duration is the project length: the furthest timeline end over all clips,
// 0 for an empty project.
func (p *Project) Duration() float64 {
	var d float64
	for _, c := range p.Clips {
		if c.TimelineEnd > d {
			d = c.TimelineEnd
		}
	}
	return d
}

// Clip returns the clip with the given ID, or nil.
func (p *Project) Clip(id string) *Clip {
	for _, c := range p.Clips {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// AddClip appends a clip at the top of the arrangement order.
func (p *Project) AddClip(c *Clip) {
	p.Clips = append(p.Clips, c)
}

// RemoveClip deletes the clip with the given ID, reporting whether it existed.
func (p *Project) RemoveClip(id string) bool {
	for i, c := range p.Clips {
		if c.ID == id {
			p.Clips = append(p.Clips[:i], p.Clips[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceClip swaps in a new value for the clip with the same ID, preserving
// arrangement order. Reports whether a clip with that ID existed.
func (p *Project) ReplaceClip(c *Clip) bool {
	for i, existing := range p.Clips {
		if existing.ID == c.ID {
			p.Clips[i] = c
			return true
		}
	}
	return false
}

// ClampPlayhead forces the playhead into [0, Duration].
func (p *Project) ClampPlayhead() {
	if p.Playhead < 0 {
		p.Playhead = 0
	}
	if d := p.Duration(); p.Playhead > d {
		p.Playhead = d
	}
}
