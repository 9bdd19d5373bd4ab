// Package compat scores two taste profiles against each other and explains
// the result.
package compat

import (
	"fmt"
	"math"
	"time"

	"github.com/tastemap/tastemap/internal/profile"
)

// Point caps for exact rank matches at positions 1-3.
var positionCaps = [3]float64{30, 20, 15}

// crossPositionCap is the smaller bonus for an album both users rank, just
// at different positions. Weighted mode only.
const crossPositionCap = 5

// pointsPerSongOverlap is awarded per song both users picked.
const pointsPerSongOverlap = 3

// Matches records which comparison rules fired.
type Matches struct {
	SameFirstAlbum  bool
	SameSecondAlbum bool
	SameThirdAlbum  bool

	// PositionMatches counts the exact rank matches above (0-3).
	PositionMatches int

	SongOverlaps  int
	LyricOverlaps int

	// Weighted reports whether weighted scoring was used. Legacy position
	// scoring applies when either profile lacks album weights.
	Weighted bool
}

// Factor is one human-readable line of the score breakdown.
type Factor struct {
	Text     string
	Positive bool
}

// Result is the outcome of comparing two profiles.
type Result struct {
	// Score is 0-100.
	Score     int
	Matches   Matches
	Breakdown []Factor
}

// Calculate compares two profiles and returns a fresh Result. It returns nil
// when either profile has no ranked albums: that is "not enough data to
// compare", a normal outcome the caller must distinguish from a zero score.
func Calculate(mine, theirs *profile.Profile) *Result {
	if !mine.HasAlbums() || !theirs.HasAlbums() {
		return nil
	}

	matches := Matches{
		Weighted: len(mine.AlbumWeights) > 0 && len(theirs.AlbumWeights) > 0,
	}

	albumScore := 0.0
	for pos := 0; pos < len(positionCaps); pos++ {
		if pos >= len(mine.TopAlbums) || pos >= len(theirs.TopAlbums) {
			break
		}
		if mine.TopAlbums[pos] != theirs.TopAlbums[pos] {
			continue
		}

		album := mine.TopAlbums[pos]
		if matches.Weighted {
			avg := (float64(mine.AlbumWeights[album]) + float64(theirs.AlbumWeights[album])) / 2
			albumScore += avg / 100 * positionCaps[pos]
		} else {
			albumScore += positionCaps[pos]
		}

		matches.PositionMatches++
		switch pos {
		case 0:
			matches.SameFirstAlbum = true
		case 1:
			matches.SameSecondAlbum = true
		case 2:
			matches.SameThirdAlbum = true
		}
	}

	if matches.Weighted {
		// An album both users rank, just at different positions, earns a
		// smaller intensity-weighted bonus.
		for i, album := range mine.TopAlbums {
			for j, theirAlbum := range theirs.TopAlbums {
				if album == theirAlbum && i != j {
					avg := (float64(mine.AlbumWeights[album]) + float64(theirs.AlbumWeights[album])) / 2
					albumScore += avg / 100 * crossPositionCap
				}
			}
		}
	}

	matches.SongOverlaps = countSongOverlaps(mine, theirs)
	matches.LyricOverlaps = countLyricOverlaps(mine, theirs)

	songScore := matches.SongOverlaps * pointsPerSongOverlap
	// Shared lyric picks are worth 8/3 of a point each, rounded once at the
	// end rather than per match. Three shared lyrics cap the component at 8.
	lyricScore := int(math.Round(float64(matches.LyricOverlaps) * 8.0 / 3.0))

	score := int(math.Round(albumScore + float64(songScore) + float64(lyricScore)))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return &Result{
		Score:     score,
		Matches:   matches,
		Breakdown: buildBreakdown(matches, albumScore),
	}
}

// countSongOverlaps counts song ids picked by both users, set-style: a
// shared id counts once no matter how many albums list it.
func countSongOverlaps(mine, theirs *profile.Profile) int {
	theirSongs := make(map[string]bool)
	for _, songs := range theirs.AlbumSongs {
		for _, song := range songs {
			theirSongs[song] = true
		}
	}

	counted := make(map[string]bool)
	overlaps := 0
	for _, songs := range mine.AlbumSongs {
		for _, song := range songs {
			if theirSongs[song] && !counted[song] {
				counted[song] = true
				overlaps++
			}
		}
	}
	return overlaps
}

// countLyricOverlaps counts song ids with a chosen lyric on both sides. The
// lyric text itself is not compared.
func countLyricOverlaps(mine, theirs *profile.Profile) int {
	overlaps := 0
	for song := range mine.SongLyrics {
		if _, ok := theirs.SongLyrics[song]; ok {
			overlaps++
		}
	}
	return overlaps
}

func buildBreakdown(matches Matches, albumScore float64) []Factor {
	var breakdown []Factor

	if matches.SameFirstAlbum {
		breakdown = append(breakdown, Factor{Text: "Same #1 album", Positive: true})
	} else {
		breakdown = append(breakdown, Factor{Text: "Different #1 album", Positive: false})
	}

	if matches.PositionMatches >= 2 {
		breakdown = append(breakdown, Factor{
			Text:     fmt.Sprintf("%d albums in common", matches.PositionMatches),
			Positive: true,
		})
	}

	if matches.Weighted && albumScore > 0 {
		breakdown = append(breakdown, Factor{Text: "Similar intensity for favorites", Positive: true})
	}

	switch {
	case matches.SongOverlaps == 1:
		breakdown = append(breakdown, Factor{Text: "1 song in common", Positive: true})
	case matches.SongOverlaps > 1:
		breakdown = append(breakdown, Factor{
			Text:     fmt.Sprintf("%d songs in common", matches.SongOverlaps),
			Positive: true,
		})
	default:
		breakdown = append(breakdown, Factor{Text: "No songs in common", Positive: false})
	}

	// No negative counterpart for lyrics: absence of a shared lyric pick is
	// not called out.
	if matches.LyricOverlaps > 0 {
		breakdown = append(breakdown, Factor{Text: "Same taste in lyrics", Positive: true})
	}

	return breakdown
}

// Label maps a score to a display label and emoji. Band lower bounds are
// inclusive: exactly 90 is "Soulmates".
func Label(score int) (string, string) {
	switch {
	case score >= 90:
		return "Soulmates", "💖"
	case score >= 75:
		return "Best Friends", "🎶"
	case score >= 60:
		return "Good Match", "✨"
	case score >= 40:
		return "Different Eras", "🌗"
	case score >= 20:
		return "Opposites", "🔀"
	default:
		return "Totally Different", "🌪️"
	}
}

// timeNow is swapped out in tests for deterministic ComparedAt values.
var timeNow = time.Now

// ComparisonRecord is a denormalized, storage-ready snapshot of a completed
// comparison.
type ComparisonRecord struct {
	ShareID     string
	TheirAlbums []string
	AlbumNames  map[string]string
	AlbumColors map[string]string
	Score       int
	ComparedAt  time.Time
}

// NewComparisonRecord builds a cacheable snapshot of a comparison against
// the profile behind shareID. ComparedAt is stamped at call time.
func NewComparisonRecord(shareID string, theirs *profile.Profile, names, colors map[string]string, score int) ComparisonRecord {
	albums := make([]string, len(theirs.TopAlbums))
	copy(albums, theirs.TopAlbums)

	return ComparisonRecord{
		ShareID:     shareID,
		TheirAlbums: albums,
		AlbumNames:  names,
		AlbumColors: colors,
		Score:       score,
		ComparedAt:  timeNow(),
	}
}
