// Package song holds the playlist track record and its coercion from raw CSV-shaped rows.
package song

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Column names used by the workout datasets.
const (
	ColTitle    = "title"
	ColArtist   = "artist"
	ColGenre    = "top genre"
	ColBPM      = "bpm"
	ColDuration = "dur"
	ColEnergy   = "nrgy"
	ColValence  = "val"
	ColAcoustic = "acous"
	ColDance    = "dnce"
	ColYear     = "year"
)

// Columns lists every column a dataset row is expected to carry, in file order.
var Columns = []string{
	ColTitle, ColArtist, ColGenre, ColBPM, ColDuration,
	ColEnergy, ColValence, ColAcoustic, ColDance, ColYear,
}

// Row is one untyped dataset record keyed by column name.
type Row map[string]string

// Song is a playlist track with numeric attributes coerced.
// Numeric fields that failed to parse are NaN.
type Song struct {
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	Genre        string  `json:"genre"`        // free-text tag, e.g. "australian pop"
	BPM          float64 `json:"bpm"`          // beats per minute
	Duration     float64 `json:"duration"`     // seconds
	Energy       float64 `json:"energy"`       // 0-100
	Valence      float64 `json:"valence"`      // 0-100
	Acousticness float64 `json:"acousticness"` // 0-100
	Danceability float64 `json:"danceability"` // 0-100
	Year         int     `json:"year"`
}

// Parse coerces a row into a Song. It never fails: unparsable numbers become NaN
// and an unparsable year becomes 0.
func Parse(row Row) Song {
	return Song{
		Title:        strings.TrimSpace(row[ColTitle]),
		Artist:       strings.TrimSpace(row[ColArtist]),
		Genre:        strings.TrimSpace(row[ColGenre]),
		BPM:          parseNumber(row[ColBPM]),
		Duration:     parseNumber(row[ColDuration]),
		Energy:       parseNumber(row[ColEnergy]),
		Valence:      parseNumber(row[ColValence]),
		Acousticness: parseNumber(row[ColAcoustic]),
		Danceability: parseNumber(row[ColDance]),
		Year:         parseYear(row[ColYear]),
	}
}

// MarshalJSON writes attributes that failed to parse as null.
func (s Song) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title        string   `json:"title"`
		Artist       string   `json:"artist"`
		Genre        string   `json:"genre"`
		BPM          *float64 `json:"bpm"`
		Duration     *float64 `json:"duration"`
		Energy       *float64 `json:"energy"`
		Valence      *float64 `json:"valence"`
		Acousticness *float64 `json:"acousticness"`
		Danceability *float64 `json:"danceability"`
		Year         int      `json:"year,omitempty"`
	}{
		s.Title, s.Artist, s.Genre,
		finite(s.BPM), finite(s.Duration), finite(s.Energy), finite(s.Valence),
		finite(s.Acousticness), finite(s.Danceability), s.Year,
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Valid reports whether the song can enter numeric pipelines.
func (s Song) Valid() bool {
	return s.Title != "" && !math.IsNaN(s.BPM) && !math.IsInf(s.BPM, 0) && s.BPM > 0
}

// ParseAll coerces rows and keeps only valid songs, preserving input order.
// It returns the number of rows that were skipped.
func ParseAll(rows []Row) ([]Song, int) {
	songs := make([]Song, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		s := Parse(row)
		if !s.Valid() {
			skipped++
			continue
		}
		songs = append(songs, s)
	}
	return songs, skipped
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func parseYear(raw string) int {
	v := parseNumber(raw)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}
