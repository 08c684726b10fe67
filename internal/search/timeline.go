package search

// TimelineWindow is a relative recency filter applied against a
// record's timestamp.
type TimelineWindow string

const (
	WindowAll TimelineWindow = "all"
	Window24h TimelineWindow = "24h"
	Window7d  TimelineWindow = "7d"
	Window30d TimelineWindow = "30d"
)

const (
	hourMs = int64(60 * 60 * 1000)
	dayMs  = 24 * hourMs
)

// windowMillis returns the window span in milliseconds. The second
// result is false for WindowAll and unrecognized windows, which do not
// constrain results.
func windowMillis(window TimelineWindow) (int64, bool) {
	switch window {
	case Window24h:
		return 24 * hourMs, true
	case Window7d:
		return 7 * dayMs, true
	case Window30d:
		return 30 * dayMs, true
	}
	return 0, false
}

// ApplyTimelineWindow reports whether a record timestamped valueMs
// falls inside the window ending at nowMs. Deltas are absolute
// milliseconds, never calendar-day or local-time arithmetic, so the
// result is stable across DST transitions. A non-positive valueMs is
// an unusable timestamp and fails every bounded window.
func ApplyTimelineWindow(valueMs int64, window TimelineWindow, nowMs int64) bool {
	span, bounded := windowMillis(window)
	if !bounded {
		return true
	}
	if valueMs <= 0 {
		return false
	}
	return nowMs-valueMs <= span
}
