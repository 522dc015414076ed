package song

import (
	"math"
	"sort"
)

// TimelinePoint places a song on the workout clock.
type TimelinePoint struct {
	Song        Song    `json:"song"`
	StartMinute float64 `json:"start_minute"`
}

// Timeline is a playlist laid out by cumulative play time.
type Timeline []TimelinePoint

// NewTimeline lays songs end to end using their durations.
// A song with a missing or negative duration occupies no time.
func NewTimeline(songs []Song) Timeline {
	tl := make(Timeline, 0, len(songs))
	var elapsed float64
	for _, s := range songs {
		tl = append(tl, TimelinePoint{Song: s, StartMinute: elapsed / 60})
		if !math.IsNaN(s.Duration) && s.Duration > 0 {
			elapsed += s.Duration
		}
	}
	return tl
}

// TotalMinutes returns the end of the last song in minutes.
func (tl Timeline) TotalMinutes() float64 {
	if len(tl) == 0 {
		return 0
	}
	last := tl[len(tl)-1]
	end := last.StartMinute
	if !math.IsNaN(last.Song.Duration) && last.Song.Duration > 0 {
		end += last.Song.Duration / 60
	}
	return end
}

// Nearest returns the point whose start minute is closest to minute.
// Ties go to the earlier song. ok is false for an empty timeline.
func (tl Timeline) Nearest(minute float64) (TimelinePoint, bool) {
	if len(tl) == 0 {
		return TimelinePoint{}, false
	}

	i := sort.Search(len(tl), func(i int) bool { return tl[i].StartMinute >= minute })
	switch {
	case i == 0:
		return tl[0], true
	case i == len(tl):
		return tl[len(tl)-1], true
	}

	before, after := tl[i-1], tl[i]
	if minute-before.StartMinute <= after.StartMinute-minute {
		return before, true
	}
	return after, true
}
