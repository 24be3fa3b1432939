package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/skotter-marq/video-editor-agent/internal/timeline"
)

const maxClipNameLen = 60

// FromProject resolves a project's clips into EDL events in timeline order.
// pathFor maps a source ID to a media path; unknown sources resolve to an
// empty path and are still listed so the cut stays complete.
func FromProject(p *timeline.Project, pathFor func(sourceID string) string) []Event {
	events := make([]Event, 0, len(p.Clips))
	for _, c := range p.Clips {
		path := ""
		if pathFor != nil {
			path = pathFor(c.SourceID)
		}
		events = append(events, Event{
			ClipName:    SanitizeName(c.Name, maxClipNameLen),
			MediaPath:   path,
			SourceInMs:  int(math.Round(c.TrimStart * 1000)),
			SourceOutMs: int(math.Round(c.TrimEnd * 1000)),
			RecordInMs:  int(math.Round(c.TimelineStart * 1000)),
			RecordOutMs: int(math.Round(c.TimelineEnd * 1000)),
			Speed:       c.Audio.Speed,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].RecordInMs < events[j].RecordInMs
	})
	return events
}

// GenerateEDL renders events as a CMX3600 edit decision list.
func GenerateEDL(events []Event, title string, frameRate float64) string {
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		fps = 30
	}

	isDropFrame := math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if isDropFrame {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	for i, ev := range events {
		srcIn := msToTimecode(ev.SourceInMs, fps)
		srcOut := msToTimecode(ev.SourceOutMs, fps)
		recIn := msToTimecode(ev.RecordInMs, fps)
		recOut := msToTimecode(ev.RecordOutMs, fps)

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, "AX", "V", srcIn, srcOut, recIn, recOut),
		)
		if ev.Speed != 0 && math.Abs(ev.Speed-1) > 1e-9 {
			lines = append(lines,
				fmt.Sprintf("M2   AX       %06.1f                %s", ev.Speed*float64(fps), srcIn),
			)
		}
		lines = append(lines,
			fmt.Sprintf("* FROM CLIP NAME:  %s", ev.ClipName),
		)
		if ev.MediaPath != "" {
			lines = append(lines, fmt.Sprintf("* MEDIA PATH:  %s", ev.MediaPath))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func msToTimecode(ms int, fps int) string {
	totalFrames := int(math.Round(float64(ms) * float64(fps) / 1000.0))
	frames := totalFrames % fps
	totalSeconds := totalFrames / fps
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
