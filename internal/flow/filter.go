package flow

import (
	"errors"
	"fmt"
	"slices"

	"github.com/justestif/go-workout-music-explorer/internal/classify"
	"github.com/justestif/go-workout-music-explorer/internal/song"
)

// MoodMatchFraction is how much of a song's strongest mood weight the
// selected mood must carry to count as a match.
const MoodMatchFraction = 0.2

// Filter errors.
var (
	// ErrNothingSelected is returned for an empty selection path.
	ErrNothingSelected = errors.New("nothing selected")

	// ErrPathTooLong is returned for a path with more labels than there are stages.
	ErrPathTooLong = errors.New("selection path too long")
)

// Filter returns the songs matching path, most energetic first.
//
// Element 0 is matched fuzzily against the song's mood weights; elements
// 1..4 must equal the song's genre, texture, danceability and phase labels.
// A path that matches nothing yields an empty slice and no error.
func Filter(songs []song.Song, path []string) ([]song.Song, error) {
	if len(path) == 0 {
		return nil, ErrNothingSelected
	}
	if len(path) > classify.NumStages {
		return nil, fmt.Errorf("%w: %d labels, at most %d", ErrPathTooLong, len(path), classify.NumStages)
	}

	matched := []song.Song{}
	for _, s := range songs {
		if Matches(classify.Classify(s), path) {
			matched = append(matched, s)
		}
	}

	slices.SortStableFunc(matched, func(a, b song.Song) int {
		switch {
		case a.Energy > b.Energy:
			return -1
		case a.Energy < b.Energy:
			return 1
		}
		return 0
	})

	return matched, nil
}

// Matches reports whether a classification satisfies every element of path.
func Matches(c classify.Classification, path []string) bool {
	for i, label := range path {
		st := classify.Stage(i)
		if st == classify.StageMood {
			if !c.MoodWeights.FuzzyMatch(classify.Mood(label), MoodMatchFraction) {
				return false
			}
			continue
		}
		if c.Label(st) != label {
			return false
		}
	}
	return true
}
